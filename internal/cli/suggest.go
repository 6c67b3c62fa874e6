package cli

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"toolchainctl/internal/toolchain"
)

const maxSuggestions = 3

// suggestInstalled returns installed keys that look like key.
func suggestInstalled(reg *toolchain.Registry, key toolchain.Key) []string {
	entries, err := reg.List(false)
	if err != nil || len(entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Key.String())
	}
	return suggest(key.String(), names)
}

func suggest(query string, names []string) []string {
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		// The full key rarely matches as a subsequence; fall back to the name.
		if i := strings.IndexByte(query, '@'); i > 0 {
			matches = fuzzy.Find(query[:i], names)
		}
	}
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
