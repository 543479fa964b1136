package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleHighlight marks names such as the active source.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleLink marks addresses and URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue is used for printed values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning is used for warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

func printStatus(icon lipgloss.Style, glyph, msg string) {
	fmt.Println(icon.Render(glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Overview Summaries
// =============================================================================

// printGeometry prints the grid dimensions of g as key/value lines.
func printGeometry(g layout.Geometry) {
	printKeyValue("grid", fmt.Sprintf("%d × %d", g.Columns, g.Rows))
	printKeyValue("box", fmt.Sprintf("%.1f × %.1f", g.BoxWidth, g.BoxHeight))
	printKeyValue("radius", fmt.Sprintf("%.2f", g.HexagonRadius))
	printKeyValue("labels", strconv.FormatBool(g.ShowLabel))
}

// printStats prints site and box counts and whether the result came from
// the cache, joined on one dimmed line.
func printStats(siteCount, boxCount int, cached bool) {
	var parts []string
	if siteCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d sites", siteCount)))
	}
	if boxCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d boxes", boxCount)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printStateCounts prints how many sites are in each state, worst last.
func printStateCounts(counts map[sites.State]int) {
	var parts []string
	for _, st := range []sites.State{sites.StateOK, sites.StateDowntime, sites.StateWarning, sites.StateCritical} {
		if n := counts[st]; n > 0 {
			parts = append(parts, stateStyle(st).Render(fmt.Sprintf("%d %s", n, st)))
		}
	}
	if len(parts) == 0 {
		return
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// stateStyle colors text like the marker fill of st.
func stateStyle(st sites.State) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(sink.StateColor(st)))
}
