package logutil

// Truncate shortens s to at most maxRunes runes for logging, appending "..."
// when something was cut. Used for user-supplied text such as comment bodies.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
