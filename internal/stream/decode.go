// Package stream consumes the chat SSE stream incrementally. Decoding is
// staged: raw reads pass through a UTF-8 carry so multi-byte characters
// split across network reads are never corrupted, then through a line
// buffer that retains incomplete lines, and only complete lines reach the
// parser.
package stream

import (
	"strings"
	"unicode/utf8"
)

// utf8Decoder converts raw byte chunks to text, holding back the trailing
// bytes of an incomplete multi-byte sequence until the next chunk arrives.
type utf8Decoder struct {
	pending []byte
}

// Decode returns the decodable prefix of the pending bytes plus b.
func (d *utf8Decoder) Decode(b []byte) string {
	data := append(d.pending, b...)

	cut := len(data)
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}

	out := string(data[:cut])
	d.pending = append(d.pending[:0], data[cut:]...)
	return out
}

// Flush returns whatever bytes remain. An incomplete sequence at true end
// of stream decodes to the replacement character rather than being lost.
func (d *utf8Decoder) Flush() string {
	out := string(d.pending)
	d.pending = d.pending[:0]
	return out
}

// lineSplitter accumulates decoded text and yields complete lines, carrying
// a trailing partial line across calls.
type lineSplitter struct {
	carry string
}

// Split returns the complete lines in carry+text, retaining the remainder.
func (l *lineSplitter) Split(text string) []string {
	s := l.carry + text

	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, s[:i])
		s = s[i+1:]
	}
	l.carry = s
	return lines
}

// Flush returns the retained partial line, if any.
func (l *lineSplitter) Flush() (string, bool) {
	s := l.carry
	l.carry = ""
	return s, s != ""
}
