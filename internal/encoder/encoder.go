package encoder

import (
	"strings"

	"koneko/internal/instruction"
)

// Encode renders an instruction sequence as compact-notation text: the
// marker glyph, then the instruction's run length in unit glyphs. Total
// and pure; every instruction is representable.
func Encode(instrs []instruction.Instruction) string {
	var b strings.Builder
	for _, inst := range instrs {
		b.WriteRune(instruction.Marker)
		for i := 0; i < inst.RunLength(); i++ {
			b.WriteRune(instruction.Unit)
		}
	}
	return b.String()
}
