package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

var (
	hubStyle     = color.New(color.FgMagenta, color.Bold)
	spokeStyle   = color.New(color.FgBlue, color.Bold)
	faintStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgWhite)
	deployStyle  = color.New(color.FgYellow)
	skipStyle    = color.New(color.FgGreen)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRole(role domain.ChainRole) string {
	switch role {
	case domain.RoleHub:
		return hubStyle.Sprint(cases.Title(language.English).String(string(role)))
	case domain.RoleSpoke:
		return spokeStyle.Sprint(cases.Title(language.English).String(string(role)))
	default:
		return faintStyle.Sprint("-")
	}
}

func renderWarnings(out io.Writer, warnings []domain.ResolutionWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, w := range warnings {
		fmt.Fprintln(out, FormatWarning(w.String()))
	}
}

// newTable returns a borderless table in the CLI's list style
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = true
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = 0
	return t
}
