// Package marker defines the comment sentinels that delimit and identify an
// injected block inside the workbench markup file.
//
// Three fixed grammars are recognised:
//
//	<!-- !! VSCODE-CUSTOM-CSS-SESSION-ID <token> !! -->
//	<!-- !! VSCODE-CUSTOM-CSS-START !! -->
//	<!-- !! VSCODE-CUSTOM-CSS-END !! -->
//
// Everything here works on in-memory text and has no side effects.
package marker

import "strings"

const (
	// StartSentinel opens the injected block
	StartSentinel = "<!-- !! VSCODE-CUSTOM-CSS-START !! -->"
	// EndSentinel closes the injected block
	EndSentinel = "<!-- !! VSCODE-CUSTOM-CSS-END !! -->"

	sessionOpen   = "<!-- !! VSCODE-CUSTOM-CSS-SESSION-ID "
	sentinelClose = " !! -->"
)

// Kind identifies which sentinel grammar produced a match
type Kind int

const (
	// KindSession is a session sentinel line
	KindSession Kind = iota + 1
	// KindStart is the start sentinel
	KindStart
	// KindEnd is the end sentinel
	KindEnd
	// KindBlock spans a start sentinel through its end sentinel
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) into the scanned content
type Span struct {
	Start int
	End   int
}

// Match is the result of a successful scan
type Match struct {
	Kind  Kind
	Span  Span
	Token string // session identifier, only set for KindSession
}

// isSessionToken accepts the characters of a session identifier: hex digits and hyphens
func isSessionToken(c byte) bool {
	return c == '-' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

// isLooseToken accepts word characters and hyphens. Stripping uses the wider
// class so that damaged or foreign session lines are removed as well.
func isLooseToken(c byte) bool {
	return c == '-' || c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// SessionSentinel renders the session sentinel for id, without a trailing newline
func SessionSentinel(id string) string {
	return sessionOpen + id + sentinelClose
}

// ValidSessionID reports whether id is a non-empty run of hex digits and hyphens
func ValidSessionID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !isSessionToken(id[i]) {
			return false
		}
	}
	return true
}

// FindSession returns the first well-formed session sentinel whose token is a valid session id
func FindSession(content string) (Match, bool) {
	return findSession(content, 0, isSessionToken)
}

// FindStart returns the first start sentinel at or after from
func FindStart(content string, from int) (Match, bool) {
	return findFixed(content, from, StartSentinel, KindStart)
}

// FindEnd returns the first end sentinel at or after from
func FindEnd(content string, from int) (Match, bool) {
	return findFixed(content, from, EndSentinel, KindEnd)
}

// FindBlock returns the span from the first start sentinel through the first
// end sentinel that follows it. A start sentinel without a matching end is
// reported as not found.
func FindBlock(content string) (Match, bool) {
	start, ok := FindStart(content, 0)
	if !ok {
		return Match{}, false
	}
	end, ok := FindEnd(content, start.Span.End)
	if !ok {
		return Match{}, false
	}
	return Match{Kind: KindBlock, Span: Span{Start: start.Span.Start, End: end.Span.End}}, true
}

// ExtractSessionID returns the identifier carried by the first session sentinel
func ExtractSessionID(content string) (string, bool) {
	m, ok := FindSession(content)
	if !ok {
		return "", false
	}
	return m.Token, true
}

// StripPatch removes the injected block and every session sentinel, together
// with the newlines that trail them. It repeats until nothing changes, so
// StripPatch(StripPatch(x)) == StripPatch(x) for every x.
func StripPatch(content string) string {
	for {
		next := stripOnce(content)
		if next == content {
			return content
		}
		content = next
	}
}

// Block renders the session sentinel, start sentinel, payload and end sentinel,
// each terminated by a newline.
func Block(sessionID, payload string) string {
	var b strings.Builder
	b.WriteString(SessionSentinel(sessionID))
	b.WriteByte('\n')
	b.WriteString(StartSentinel)
	b.WriteByte('\n')
	b.WriteString(payload)
	if !strings.HasSuffix(payload, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(EndSentinel)
	b.WriteByte('\n')
	return b.String()
}

func stripOnce(content string) string {
	if m, ok := FindBlock(content); ok {
		content = content[:m.Span.Start] + content[skipNewlines(content, m.Span.End):]
	}

	var b strings.Builder
	pos := 0
	for {
		m, ok := findSession(content, pos, isLooseToken)
		if !ok {
			break
		}
		b.WriteString(content[pos:m.Span.Start])
		pos = skipNewlines(content, m.Span.End)
	}
	if pos == 0 {
		return content
	}
	b.WriteString(content[pos:])
	return b.String()
}

func findSession(content string, from int, accept func(byte) bool) (Match, bool) {
	for from <= len(content) {
		idx := strings.Index(content[from:], sessionOpen)
		if idx < 0 {
			return Match{}, false
		}
		start := from + idx
		tokenStart := start + len(sessionOpen)
		tokenEnd := tokenStart
		for tokenEnd < len(content) && accept(content[tokenEnd]) {
			tokenEnd++
		}
		if tokenEnd > tokenStart && strings.HasPrefix(content[tokenEnd:], sentinelClose) {
			return Match{
				Kind:  KindSession,
				Span:  Span{Start: start, End: tokenEnd + len(sentinelClose)},
				Token: content[tokenStart:tokenEnd],
			}, true
		}
		// Malformed sentinel, keep scanning past its opening
		from = start + 1
	}
	return Match{}, false
}

func findFixed(content string, from int, sentinel string, kind Kind) (Match, bool) {
	if from > len(content) {
		return Match{}, false
	}
	idx := strings.Index(content[from:], sentinel)
	if idx < 0 {
		return Match{}, false
	}
	start := from + idx
	return Match{Kind: kind, Span: Span{Start: start, End: start + len(sentinel)}}, true
}

func skipNewlines(content string, pos int) int {
	for pos < len(content) && content[pos] == '\n' {
		pos++
	}
	return pos
}
