package main

import (
	"os"
	"strings"

	"datepick-cli/internal/cli"
)

// isDateLike matches the leading "YYYY-" of a serialized value.
func isDateLike(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < len("YYYY-M") || s[4] != '-' {
		return false
	}
	for _, r := range s[:4] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func rewriteDirectParseArgs(argv []string) []string {
	// Convenience: `datepick 2025-01-05` works like `datepick parse 2025-01-05`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `datepick --locale nb 2025-01-05T09:30`),
	// so we look for the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
		"--locale": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertParse := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "parse")
		out = append(out, argv[at:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isDateLike(argv[i+1]) {
				return insertParse(i)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isDateLike(a) {
			return insertParse(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectParseArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
