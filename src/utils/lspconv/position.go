// Package lspconv converts between Go byte offsets and LSP positions.
// LSP columns count UTF-16 code units, Go strings index bytes.
package lspconv

import (
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"
)

// UTF16Len returns the length of s in UTF-16 code units
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// UTF16Column returns the UTF-16 column of byteIdx within line.
// byteIdx is clamped to the line.
func UTF16Column(line string, byteIdx int) uint32 {
	if byteIdx > len(line) {
		byteIdx = len(line)
	}
	if byteIdx < 0 {
		byteIdx = 0
	}
	return uint32(UTF16Len(line[:byteIdx]))
}

// ByteIndex returns the byte index in line of UTF-16 column col.
// Columns past the end clamp to len(line); a column inside a surrogate
// pair resolves to the start of that rune.
func ByteIndex(line string, col uint32) int {
	units := uint32(0)
	for i, r := range line {
		if units >= col {
			return i
		}
		width := uint32(utf16.RuneLen(r))
		if units+width > col {
			return i
		}
		units += width
	}
	return len(line)
}

// Position builds a protocol.Position
func Position(line, character uint32) protocol.Position {
	return protocol.Position{Line: line, Character: character}
}

// PointRange is an empty range at (line, character)
func PointRange(line, character uint32) protocol.Range {
	p := Position(line, character)
	return protocol.Range{Start: p, End: p}
}

// SplitLines splits text on the LSP line terminators \r\n, \r and \n.
// The result always has at least one element.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

// LineStarts returns the byte offset at which every line of text begins
func LineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// TrimLineBreak drops a trailing line terminator from line
func TrimLineBreak(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
