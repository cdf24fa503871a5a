package instruction

// Instruction is one of the eight primitive operations of the language.
type Instruction byte

const (
	MoveRight Instruction = iota
	MoveLeft
	Increment
	Decrement
	LoopStart
	LoopEnd
	Output
	Input
)

const Count = 8

// Compact notation glyphs: each instruction is the marker followed by a run
// of 1..8 units, the run length being the instruction's ordinal plus one.
const (
	Marker = 'ね'
	Unit   = 'こ'
)

var symbols = [Count]string{
	MoveRight: "子猫",
	MoveLeft:  "子獅子",
	Increment: "猫の子",
	Decrement: "親猫",
	LoopStart: "千尋の谷",
	LoopEnd:   "這い上がれ",
	Output:    "鳴け",
	Input:     "聞け",
}

var names = [Count]string{
	MoveRight: "MoveRight",
	MoveLeft:  "MoveLeft",
	Increment: "Increment",
	Decrement: "Decrement",
	LoopStart: "LoopStart",
	LoopEnd:   "LoopEnd",
	Output:    "Output",
	Input:     "Input",
}

// Spelling is one accepted natural-notation glyph sequence. The set is
// prefix-free, so a scanner can match greedily without backtracking.
type Spelling struct {
	Glyph string
	Inst  Instruction
}

// Spellings lists every glyph sequence the lexer accepts. 獅子の子 is an
// alternate spelling of the increment glyph; encoding always uses 猫の子.
var Spellings = []Spelling{
	{"子猫", MoveRight},
	{"子獅子", MoveLeft},
	{"猫の子", Increment},
	{"獅子の子", Increment},
	{"親猫", Decrement},
	{"千尋の谷", LoopStart},
	{"這い上がれ", LoopEnd},
	{"鳴け", Output},
	{"聞け", Input},
}

func (i Instruction) String() string {
	if int(i) >= Count {
		return "Unknown"
	}
	return names[i]
}

// Symbol returns the canonical natural-notation glyph sequence.
func (i Instruction) Symbol() string {
	return symbols[i]
}

// RunLength returns the compact-notation repeat count, 1..8.
func (i Instruction) RunLength() int {
	return int(i) + 1
}

// FromSymbol resolves a natural-notation glyph sequence, including the
// accepted alternate spellings.
func FromSymbol(glyph string) (Instruction, bool) {
	for _, sp := range Spellings {
		if sp.Glyph == glyph {
			return sp.Inst, true
		}
	}
	return 0, false
}

// FromRunLength resolves a compact-notation repeat count.
func FromRunLength(n int) (Instruction, bool) {
	if n < 1 || n > Count {
		return 0, false
	}
	return Instruction(n - 1), true
}
