package vm

// DefaultTapeSize is the cell count used when no size is configured.
const DefaultTapeSize = 16

// Machine is the mutable state of one run: the circular tape, the data
// pointer, and the output log. One Machine belongs to exactly one VM.
type Machine struct {
	tape    []int
	pointer int
	output  []int
}

func NewMachine(size int) *Machine {
	if size <= 0 {
		size = DefaultTapeSize
	}
	return &Machine{tape: make([]int, size)}
}

func (m *Machine) MoveRight() {
	m.pointer = (m.pointer + 1) % len(m.tape)
}

// MoveLeft applies no wraparound, unlike MoveRight: the pointer may go
// negative, and a later cell access then faults.
func (m *Machine) MoveLeft() {
	m.pointer--
}

func (m *Machine) Add(delta int) {
	m.tape[m.pointer] += delta
}

func (m *Machine) Cell() int {
	return m.tape[m.pointer]
}

func (m *Machine) SetCell(v int) {
	m.tape[m.pointer] = v
}

func (m *Machine) Pointer() int {
	return m.pointer
}

func (m *Machine) Size() int {
	return len(m.tape)
}

func (m *Machine) logOutput(v int) {
	m.output = append(m.output, v)
}

// Output returns a copy of the output log.
func (m *Machine) Output() []int {
	out := make([]int, len(m.output))
	copy(out, m.output)
	return out
}

// Tape returns a copy of the tape contents.
func (m *Machine) Tape() []int {
	t := make([]int, len(m.tape))
	copy(t, m.tape)
	return t
}
