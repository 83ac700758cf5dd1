package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/template"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorBlue  = lipgloss.Color("75")  // Light blue - commands
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconLocked  = "locked"
	iconHidden  = "hidden"
)

// =============================================================================
// Status Output
// =============================================================================

func printStatus(icon lipgloss.Style, glyph, format string, args ...any) {
	fmt.Println(icon.Render(glyph) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(styleIconSuccess, iconSuccess, format, args...) }
func printError(format string, args ...any) { printStatus(styleIconError, iconError, format, args...) }
func printInfo(format string, args ...any) { printStatus(styleIconInfo, iconInfo, format, args...) }

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Layer Table
// =============================================================================

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func layerFlags(l layer.Layer) string {
	switch {
	case l.Lock && l.Hide:
		return iconLocked + "," + iconHidden
	case l.Lock:
		return iconLocked
	case l.Hide:
		return iconHidden
	}
	return ""
}

// layerRows returns one table row per layer in z-order, back to front.
func layerRows(snap layer.Snapshot) [][]string {
	quadrant := template.Assignments(snap)
	rows := make([][]string, 0, snap.Len())
	for _, l := range snap.Ordered() {
		rows = append(rows, []string{
			l.ID,
			l.Type.String(),
			num(l.X) + "," + num(l.Y),
			num(l.Width) + "×" + num(l.Height),
			layerFlags(l),
			quadrant[l.ID],
		})
	}
	return rows
}

// renderLayerTable writes the board's layers as a bordered table.
func renderLayerTable(w io.Writer, snap layer.Snapshot) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Role", "Position", "Size", "Flags", "Quadrant").
		Rows(layerRows(snap)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Fprintln(w, t.Render())
}
