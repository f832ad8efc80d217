package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/careerquest/internal/ui/theme"
)

const ruleWidth = 72

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, theme.Title.Render(title))
	fmt.Fprintln(w, theme.Subtitle.Render(strings.Repeat("─", ruleWidth)))
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", theme.Label.Render(label+":"), value)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
