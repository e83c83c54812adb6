package helpers

import (
	"strings"

	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/config"
)

// CompleteConfigKeys is a helper for cobra.ValidArgsFunction that completes
// the first argument with configuration keys.
func CompleteConfigKeys(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, key := range config.Keys {
		if strings.HasPrefix(key, toComplete) {
			keys = append(keys, key)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
