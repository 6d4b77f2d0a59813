package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorInfo    = 0x3498DB // Blue
	ColorBank    = 0x0099FF
)
