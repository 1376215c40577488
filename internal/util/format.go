// Package util holds small formatting helpers shared by the CLI commands.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// FormatReport renders a flat report map as an ASCII block with a title.
// Keys are printed in sorted order so repeated runs produce identical output.
func FormatReport(data map[string]any, title string) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("  " + title + "\n")
	b.WriteString(rule + "\n")

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := strings.ReplaceAll(k, "_", " ")
		fmt.Fprintf(&b, "  %-28s %v\n", label+":", data[k])
	}
	b.WriteString(rule + "\n")
	return b.String()
}
