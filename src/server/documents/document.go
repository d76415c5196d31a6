package documents

import (
	"regexp"
	"strings"

	"go.lsp.dev/protocol"

	"oreore-lsp/src/utils/lspconv"
)

// Document is an immutable snapshot of one text document. Store.Change
// replaces the snapshot instead of mutating it.
type Document struct {
	URI        protocol.DocumentURI
	LanguageID string
	Version    int32
	Text       string

	lineStarts []int
}

// NewDocument snapshots text
func NewDocument(uri protocol.DocumentURI, languageID string, version int32, text string) *Document {
	return &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
		lineStarts: lspconv.LineStarts(text),
	}
}

// LineCount returns the number of lines, counting LSP line terminators
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineAt returns the text of line without its terminator
func (d *Document) LineAt(line uint32) (string, bool) {
	if int(line) >= len(d.lineStarts) {
		return "", false
	}
	start := d.lineStarts[line]
	end := len(d.Text)
	if int(line)+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1]
	}
	return lspconv.TrimLineBreak(d.Text[start:end]), true
}

// OffsetAt converts pos to a byte offset, clamping to the document
func (d *Document) OffsetAt(pos protocol.Position) int {
	if int(pos.Line) >= len(d.lineStarts) {
		return len(d.Text)
	}
	line, _ := d.LineAt(pos.Line)
	return d.lineStarts[pos.Line] + lspconv.ByteIndex(line, pos.Character)
}

// PositionAt converts a byte offset to a position, clamping to the document
func (d *Document) PositionAt(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Text) {
		offset = len(d.Text)
	}
	line := len(d.lineStarts) - 1
	for line > 0 && d.lineStarts[line] > offset {
		line--
	}
	text, _ := d.LineAt(uint32(line))
	return lspconv.Position(uint32(line), lspconv.UTF16Column(text, offset-d.lineStarts[line]))
}

// FullRange spans the whole document
func (d *Document) FullRange() protocol.Range {
	return protocol.Range{
		Start: d.PositionAt(0),
		End:   d.PositionAt(len(d.Text)),
	}
}

// LinePrefix returns the text of pos's line before pos
func (d *Document) LinePrefix(pos protocol.Position) (string, bool) {
	line, ok := d.LineAt(pos.Line)
	if !ok {
		return "", false
	}
	return line[:lspconv.ByteIndex(line, pos.Character)], true
}

// WordAt finds the match of pattern on pos's line whose range contains pos.
// A position right after the last character of a word still hits it.
func (d *Document) WordAt(pos protocol.Position, pattern *regexp.Regexp) (string, protocol.Range, bool) {
	line, ok := d.LineAt(pos.Line)
	if !ok {
		return "", protocol.Range{}, false
	}
	cursor := lspconv.ByteIndex(line, pos.Character)

	for _, m := range pattern.FindAllStringIndex(line, -1) {
		if m[0] == m[1] {
			continue
		}
		if m[0] <= cursor && cursor <= m[1] {
			return line[m[0]:m[1]], protocol.Range{
				Start: lspconv.Position(pos.Line, lspconv.UTF16Column(line, m[0])),
				End:   lspconv.Position(pos.Line, lspconv.UTF16Column(line, m[1])),
			}, true
		}
	}
	return "", protocol.Range{}, false
}

// Scheme returns the URI scheme, or "" when the URI has none
func (d *Document) Scheme() string {
	s := string(d.URI)
	if i := strings.Index(s, ":"); i > 0 {
		return s[:i]
	}
	return ""
}
