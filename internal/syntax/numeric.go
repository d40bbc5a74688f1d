package syntax

import "strconv"

// parseUintLiteral parses a NUMBER token's text as the fixed size of an
// `array<T, N>` type. Only plain decimal sizes are meaningful here; hex
// and signed forms are valid NUMBER tokens elsewhere (const values) but
// never valid array sizes.
func parseUintLiteral(text string) (uint64, error) {
	return strconv.ParseUint(text, 10, 64)
}
