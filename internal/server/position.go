package server

import "github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"

// lspPosition converts a 1-based syntax.LineCol to the zero-based
// Position the wire format expects.
func lspPosition(lc syntax.LineCol) Position {
	return Position{Line: lc.Line - 1, Character: lc.Col - 1}
}

// lspRange converts a byte range into text to a zero-based wire Range.
func lspRange(text string, r syntax.Range) Range {
	return Range{
		Start: lspPosition(syntax.OffsetToLineCol(text, r.Start)),
		End:   lspPosition(syntax.OffsetToLineCol(text, r.End)),
	}
}

// offsetFromPosition translates a zero-based (line, character) position
// to a byte offset by summing line lengths. Lines are split on LF only,
// matching the original implementation's documented imprecision with
// CRLF-terminated documents.
func offsetFromPosition(text string, pos Position) int {
	offset := 0
	line := 0
	for i := 0; i < len(text); i++ {
		if line == pos.Line {
			break
		}
		if text[i] == '\n' {
			line++
			offset = i + 1
		}
	}
	return offset + pos.Character
}

func isIdentifierChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}

// identifierAtOffset extends left and right from offset while characters
// are identifier characters, per the lexical heuristic documented in §9:
// imprecise at boundaries but deliberately preserved.
func identifierAtOffset(text string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isIdentifierChar(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIdentifierChar(text[end]) {
		end++
	}
	return text[start:end]
}
