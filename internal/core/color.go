package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorGray
	ColorViolet     // bat body
	ColorDeepViolet // bat wings
	ColorSlate      // obstacle edges and caps
	ColorDarkSlate  // obstacle fill
	ColorMoon
	ColorIndigo // ground strip
)
