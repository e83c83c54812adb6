// Package markup locates the few HTML constructs the patch engine cares about
// in the workbench document. It tokenizes with golang.org/x/net/html so tags
// inside scripts and comments are never mistaken for real markup, and it
// reports byte offsets into the original text so edits preserve every other byte.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// cspHeader is the http-equiv value of the tag that blocks inline scripts
const cspHeader = "Content-Security-Policy"

// token is a tag token with its byte range in the source
type token struct {
	typ   html.TokenType
	name  string
	attrs map[string]string
	start int
	end   int
}

// scan walks every token and calls fn for start, self-closing and end tags.
// Returning false from fn stops the walk.
func scan(content string, fn func(tok token) bool) {
	z := html.NewTokenizer(strings.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		// Raw must be measured before TagName/TagAttr, which may rewrite it in place
		size := len(z.Raw())
		start := offset
		offset += size

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
		default:
			continue
		}

		name, hasAttr := z.TagName()
		tok := token{typ: tt, name: string(name), start: start, end: start + size}
		if hasAttr {
			tok.attrs = make(map[string]string)
			for {
				key, val, more := z.TagAttr()
				tok.attrs[string(key)] = string(val)
				if !more {
					break
				}
			}
		}
		if !fn(tok) {
			return
		}
	}
}

// FindCSP returns the byte range of the first Content-Security-Policy meta tag
func FindCSP(content string) (start, end int, ok bool) {
	scan(content, func(tok token) bool {
		if tok.typ == html.EndTagToken || tok.name != "meta" {
			return true
		}
		if strings.EqualFold(tok.attrs["http-equiv"], cspHeader) {
			start, end, ok = tok.start, tok.end, true
			return false
		}
		return true
	})
	return start, end, ok
}

// RemoveCSP deletes the first Content-Security-Policy meta tag. The second
// return value reports whether a tag was removed; a document without one is
// returned unchanged.
func RemoveCSP(content string) (string, bool) {
	start, end, ok := FindCSP(content)
	if !ok {
		return content, false
	}
	return content[:start] + content[end:], true
}

// ClosingRootOffset returns the offset of the document's closing </html> tag.
// When several are present the last one wins.
func ClosingRootOffset(content string) (int, bool) {
	offset, found := -1, false
	scan(content, func(tok token) bool {
		if tok.typ == html.EndTagToken && tok.name == "html" {
			offset, found = tok.start, true
		}
		return true
	})
	return offset, found
}

// InsertBeforeClosingRoot inserts text immediately before the closing </html> tag
func InsertBeforeClosingRoot(content, text string) (string, bool) {
	offset, ok := ClosingRootOffset(content)
	if !ok {
		return content, false
	}
	return content[:offset] + text + content[offset:], true
}
