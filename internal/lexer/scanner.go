package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"koneko/internal/errors"
	"koneko/internal/instruction"
)

// Scanner turns raw source text in either notation into an instruction
// sequence. Notation is decided once, up front: any occurrence of the
// compact marker glyph makes the whole source compact.
type Scanner struct {
	source  string
	current int
	line    int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// IsCompact reports whether source is in compact notation.
func IsCompact(source string) bool {
	return strings.ContainsRune(source, instruction.Marker)
}

// ScanInstructions normalizes the source into an instruction sequence.
func (s *Scanner) ScanInstructions() ([]instruction.Instruction, error) {
	if IsCompact(s.source) {
		return s.decodeCompact()
	}
	return s.scanNatural()
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) scanNatural() ([]instruction.Instruction, error) {
	var seq []instruction.Instruction
	for !s.isAtEnd() {
		r, size := utf8.DecodeRuneInString(s.source[s.current:])
		if r == '\n' {
			s.line++
			s.current += size
			continue
		}
		if unicode.IsSpace(r) {
			s.current += size
			continue
		}
		inst, n, ok := matchSpelling(s.source[s.current:])
		if !ok {
			return nil, errors.NewLexError("unrecognized symbol", s.line, snippet(s.source[s.current:]))
		}
		seq = append(seq, inst)
		s.current += n
	}
	return seq, nil
}

func (s *Scanner) decodeCompact() ([]instruction.Instruction, error) {
	var seq []instruction.Instruction
	for _, token := range strings.Split(s.source, string(instruction.Marker)) {
		token = strings.TrimSpace(token)
		if token == "" {
			// Absorbs leading, trailing, and doubled markers.
			continue
		}
		n := 0
		for _, r := range token {
			if r != instruction.Unit {
				return nil, errors.NewDecodeError(fmt.Sprintf("unexpected %q in run", r), token)
			}
			n++
		}
		inst, ok := instruction.FromRunLength(n)
		if !ok {
			return nil, errors.NewDecodeError(fmt.Sprintf("run length %d out of range", n), token)
		}
		seq = append(seq, inst)
	}
	return seq, nil
}

// matchSpelling tries every accepted glyph sequence at the head of rest.
// The spelling set is prefix-free, so the first hit is the only hit.
func matchSpelling(rest string) (instruction.Instruction, int, bool) {
	for _, sp := range instruction.Spellings {
		if strings.HasPrefix(rest, sp.Glyph) {
			return sp.Inst, len(sp.Glyph), true
		}
	}
	return 0, 0, false
}

// snippet clips the offending text for error messages.
func snippet(rest string) string {
	runes := 0
	for i := range rest {
		if runes == 6 {
			return rest[:i] + "..."
		}
		runes++
	}
	return rest
}
