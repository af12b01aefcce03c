// Package source defines named text with line and column lookup.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is a named piece of text, usually a file content.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCount returns number of lines, the text after the last line feed counts as a line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Line returns text of line number n (1-based) without trailing "\n" or "\r\n".
// Returns empty string for out of range n.
func (s *Source) Line(n int) string {
	if n <= 0 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	line := s.content[start:end]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line)
}

// LineCol converts byte offset to 1-based line and column numbers, columns count runes.
// Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column numbers to byte offset.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1]
	for ; col > 1 && res < l && s.content[res] != '\n'; col-- {
		_, size := utf8.DecodeRune(s.content[res:])
		res += size
	}
	return res
}

// At returns position descriptor for byte offset.
func (s *Source) At(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// AtLine returns position descriptor for 1-based line and column numbers.
func (s *Source) AtLine(line, col int) Pos {
	return s.At(s.Pos(line, col))
}

// Pos is a position in a source, it satisfies rulematch.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
