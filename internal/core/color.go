package core

import "fmt"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGBA is a true color with alpha, used for full-screen tints.
type RGBA struct {
	R, G, B, A uint8
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Dim scales the color channels by alpha/255, blending towards black.
func (c RGBA) Dim(alpha uint8) RGBA {
	scale := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(alpha) / 255)
	}
	return RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: alpha}
}
