// Package format normalizes oreore documents by removing the indentation
// of every line.
package format

import (
	"regexp"
	"strings"
	"unicode"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/utils/lspconv"
)

// lineBreak matches \n and \r\n. Extra carriage returns in front of a
// newline are folded into the break so stripping stays idempotent.
var lineBreak = regexp.MustCompile(`\r*\n`)

// SplitLines splits text on line breaks. The result always has at least
// one element; an empty text is one empty line.
func SplitLines(text string) []string {
	return lineBreak.Split(text, -1)
}

// CountLines returns the number of lines SplitLines would produce
func CountLines(text string) int {
	return len(SplitLines(text))
}

// Normalize rewrites every line break as \n and changes nothing else
func Normalize(text string) string {
	return strings.Join(SplitLines(text), "\n")
}

// isLeadingSpace matches the ECMAScript \s class: Unicode white space
// plus the byte order mark, without NEL.
func isLeadingSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// StripLeadingWhitespace removes the leading white space of every line.
// Line order, interior and trailing white space are preserved and the
// result always uses \n line breaks.
func StripLeadingWhitespace(text string) string {
	lines := SplitLines(text)
	for i, line := range lines {
		lines[i] = strings.TrimLeftFunc(line, isLeadingSpace)
	}
	return strings.Join(lines, "\n")
}

// FullRange is the span from the start of text to its end offset
func FullRange(text string) protocol.Range {
	return protocol.Range{
		Start: lspconv.Position(0, 0),
		End:   EndPosition(text),
	}
}

// EndPosition is the LSP position of offset len(text). Lines are counted
// the way LSP clients count them, so a lone \r is a line break here.
func EndPosition(text string) protocol.Position {
	lines := lspconv.SplitLines(text)
	last := lines[len(lines)-1]
	return lspconv.Position(uint32(len(lines)-1), uint32(lspconv.UTF16Len(last)))
}

// WholeDocumentEdit replaces the whole of text with its stripped form
// in a single edit.
func WholeDocumentEdit(text string) protocol.TextEdit {
	return protocol.TextEdit{
		Range:   FullRange(text),
		NewText: StripLeadingWhitespace(text),
	}
}

// Changed reports whether stripping would modify text
func Changed(text string) bool {
	return StripLeadingWhitespace(text) != text
}
