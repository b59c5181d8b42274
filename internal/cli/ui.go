package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/columnview/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - drop targets, warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Text Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// =============================================================================
// Board Styles (view command)
// =============================================================================

var (
	boxBase = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	styleBox      = boxBase.BorderForeground(colorDim).Foreground(colorWhite)
	styleBoxFocus = boxBase.BorderForeground(colorCyan).Foreground(colorCyan).Bold(true)
	styleBoxDrag  = boxBase.BorderForeground(colorGreen).Foreground(colorGreen).Bold(true)
	styleBoxDrop  = boxBase.BorderForeground(colorYellow).Foreground(colorYellow).Bold(true).
			BorderStyle(lipgloss.DoubleBorder())
	styleColumnHead = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleColumn     = lipgloss.NewStyle().MarginRight(3)

	styleSelectorItem   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSelectorCursor = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleSelectorActive = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output path line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints layering statistics on a single line.
func printStats(st pipeline.Stats, cached bool) {
	status, statusStyle := "fresh", styleComputed
	if cached {
		status, statusStyle = "cached", styleCached
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", st.NodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", st.EdgeCount)),
		StyleDim.Render(fmt.Sprintf("%d columns", st.Columns)),
		StyleDim.Render(fmt.Sprintf("%d crossings", st.Crossings)),
		statusStyle.Render(status),
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
