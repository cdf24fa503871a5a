package vm

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"koneko/internal/errors"
	"koneko/internal/instruction"
	"koneko/internal/lexer"
	"koneko/internal/parser"
)

type fakeInput struct {
	values []int
}

func (f *fakeInput) ReadValue() (int, error) {
	if len(f.values) == 0 {
		return 0, io.EOF
	}
	v := f.values[0]
	f.values = f.values[1:]
	return v, nil
}

type runResult struct {
	machine *Machine
	sink    bytes.Buffer
	err     error
}

func runSource(t *testing.T, source string, tapeSize int, inputs []int) *runResult {
	t.Helper()
	instrs, err := lexer.NewScanner(source).ScanInstructions()
	if err != nil {
		t.Fatalf("scanning %q failed: %v", source, err)
	}
	return runInstrs(t, instrs, tapeSize, inputs)
}

func runInstrs(t *testing.T, instrs []instruction.Instruction, tapeSize int, inputs []int) *runResult {
	t.Helper()
	tree, err := parser.NewParser(instrs).Build()
	if err != nil {
		t.Fatalf("building tree failed: %v", err)
	}
	res := &runResult{machine: NewMachine(tapeSize)}
	engine := NewVM(tree, res.machine, &fakeInput{values: inputs}, &res.sink)
	res.err = engine.Run()
	return res
}

func TestTwoIncrements(t *testing.T) {
	// 猫の子 and its alternate spelling 獅子の子 both increment.
	res := runSource(t, "猫の子獅子の子", 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := res.machine.Tape()[0]; got != 2 {
		t.Errorf("cell 0 = %d, want 2", got)
	}
	if got := res.machine.Pointer(); got != 0 {
		t.Errorf("pointer = %d, want 0", got)
	}
	if got := res.machine.Output(); len(got) != 0 {
		t.Errorf("output log = %v, want empty", got)
	}
}

func TestCountdownLoop(t *testing.T) {
	// +++[-.]
	res := runSource(t, "猫の子猫の子猫の子千尋の谷親猫鳴け這い上がれ", 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got, want := res.machine.Output(), []int{2, 1, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("output log = %v, want %v", got, want)
	}
	if got := res.machine.Tape()[0]; got != 0 {
		t.Errorf("cell 0 = %d, want 0", got)
	}
	if got, want := res.sink.Bytes(), []byte{2, 1, 0}; !bytes.Equal(got, want) {
		t.Errorf("sink = %v, want %v (one write per Output)", got, want)
	}
}

func TestPointerWraparound(t *testing.T) {
	// Rightward movement wraps via modulo.
	res := runSource(t, "子猫子猫子猫子猫", 4, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := res.machine.Pointer(); got != 0 {
		t.Errorf("pointer after 4 moves on tape of 4 = %d, want 0", got)
	}

	// Leftward movement does not wrap: the pointer goes negative.
	res = runSource(t, "子獅子", 4, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := res.machine.Pointer(); got != -1 {
		t.Errorf("pointer after left move at 0 = %d, want -1", got)
	}
}

func TestLoopSkippedOnZeroCell(t *testing.T) {
	// [.+]> with cell 0 = 0: the body must never run.
	res := runInstrs(t, []instruction.Instruction{
		instruction.LoopStart, instruction.Output, instruction.Increment, instruction.LoopEnd,
		instruction.MoveRight,
	}, 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := res.machine.Output(); len(got) != 0 {
		t.Errorf("output log = %v, want empty (loop body must be skipped)", got)
	}
	if got := res.machine.Pointer(); got != 1 {
		t.Errorf("pointer = %d, want 1 (instruction after the loop ran)", got)
	}
}

func TestLoopComputation(t *testing.T) {
	// ++[>+++<-] : cell 1 ends at 6, cell 0 at 0.
	res := runInstrs(t, []instruction.Instruction{
		instruction.Increment, instruction.Increment,
		instruction.LoopStart,
		instruction.MoveRight,
		instruction.Increment, instruction.Increment, instruction.Increment,
		instruction.MoveLeft,
		instruction.Decrement,
		instruction.LoopEnd,
	}, 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	tape := res.machine.Tape()
	if tape[0] != 0 || tape[1] != 6 {
		t.Errorf("tape[0..1] = %d, %d; want 0, 6", tape[0], tape[1])
	}
}

func TestNestedLoopExecution(t *testing.T) {
	// ++[>++[-]<-] : the inner loop clears cell 1 on every outer pass.
	res := runInstrs(t, []instruction.Instruction{
		instruction.Increment, instruction.Increment,
		instruction.LoopStart,
		instruction.MoveRight,
		instruction.Increment, instruction.Increment,
		instruction.LoopStart, instruction.Decrement, instruction.LoopEnd,
		instruction.MoveLeft,
		instruction.Decrement,
		instruction.LoopEnd,
	}, 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	tape := res.machine.Tape()
	if tape[0] != 0 || tape[1] != 0 {
		t.Errorf("tape[0..1] = %d, %d; want 0, 0", tape[0], tape[1])
	}
	if got := res.machine.Pointer(); got != 0 {
		t.Errorf("pointer = %d, want 0", got)
	}
}

func TestInput(t *testing.T) {
	// ,>, stores two read values in consecutive cells.
	res := runInstrs(t, []instruction.Instruction{
		instruction.Input, instruction.MoveRight, instruction.Input,
	}, 0, []int{42, 7})
	if res.err != nil {
		t.Fatal(res.err)
	}
	tape := res.machine.Tape()
	if tape[0] != 42 || tape[1] != 7 {
		t.Errorf("tape[0..1] = %d, %d; want 42, 7", tape[0], tape[1])
	}
}

func TestInputExhausted(t *testing.T) {
	res := runInstrs(t, []instruction.Instruction{instruction.Input}, 0, nil)
	if res.err == nil {
		t.Fatal("reading past the input source should fail")
	}
	if got, ok := errors.TypeOf(res.err); !ok || got != errors.InputError {
		t.Errorf("error type = %v, want InputError", got)
	}
}

func TestDeterminism(t *testing.T) {
	program := []instruction.Instruction{
		instruction.Input,
		instruction.LoopStart, instruction.Decrement, instruction.Output, instruction.LoopEnd,
	}
	first := runInstrs(t, program, 8, []int{3})
	second := runInstrs(t, program, 8, []int{3})
	if first.err != nil || second.err != nil {
		t.Fatal(first.err, second.err)
	}
	if !reflect.DeepEqual(first.machine.Output(), second.machine.Output()) {
		t.Errorf("output logs differ: %v vs %v", first.machine.Output(), second.machine.Output())
	}
	if !reflect.DeepEqual(first.machine.Tape(), second.machine.Tape()) {
		t.Errorf("tapes differ: %v vs %v", first.machine.Tape(), second.machine.Tape())
	}
}

func TestEmptyProgram(t *testing.T) {
	res := runSource(t, "", 0, nil)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := res.machine.Output(); len(got) != 0 {
		t.Errorf("output log = %v, want empty", got)
	}
	if got := res.machine.Pointer(); got != 0 {
		t.Errorf("pointer = %d, want 0", got)
	}
}

func TestDefaultTapeSize(t *testing.T) {
	m := NewMachine(0)
	if got := m.Size(); got != DefaultTapeSize {
		t.Errorf("Size() = %d, want %d", got, DefaultTapeSize)
	}
	m = NewMachine(-3)
	if got := m.Size(); got != DefaultTapeSize {
		t.Errorf("Size() = %d, want %d", got, DefaultTapeSize)
	}
}
