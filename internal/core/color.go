package core

import "fmt"

// Color is a foreground color for a screen cell.
// The value is a lipgloss color string: an ANSI code ("1".."255") or "#rrggbb".
// The empty string means the terminal default.
type Color string

// Predefined colors for game elements.
const (
	ColorDefault      Color = ""
	ColorRed          Color = "1"
	ColorGreen        Color = "2"
	ColorYellow       Color = "3"
	ColorBlue         Color = "4"
	ColorCyan         Color = "6"
	ColorWhite        Color = "7"
	ColorBrightRed    Color = "9"
	ColorBrightGreen  Color = "10"
	ColorBrightYellow Color = "11"
	ColorOrange       Color = "208"
	ColorGray         Color = "245"
)

// RGB builds a true-color Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
