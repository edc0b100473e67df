package core

// Color is the foreground color of a screen cell. The platform layer maps
// each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)
