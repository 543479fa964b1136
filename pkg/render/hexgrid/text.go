package hexgrid

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

// Label typography. LabelFontSize matches the label height the layout
// reserves.
const (
	LabelFontSize = 11.0
	fontCharWidth = 0.55
	labelFill     = 0.9
	minLabelChars = 3
)

// LabelWidth estimates the rendered width of label.
func LabelWidth(label string) float64 {
	return float64(utf8.RuneCountInString(label)) * LabelFontSize * fontCharWidth
}

// TruncateLabel shortens label so it fits into a box of the given width,
// replacing the tail with "..".
func TruncateLabel(label string, boxWidth float64) string {
	maxChars := int(boxWidth * labelFill / (LabelFontSize * fontCharWidth))
	if maxChars < minLabelChars {
		maxChars = minLabelChars
	}
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
