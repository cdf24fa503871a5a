package vm

import (
	"fmt"
	"io"

	"koneko/internal/errors"
	"koneko/internal/instruction"
	"koneko/internal/parser"
)

// InputReader is the blocking input collaborator: one integer per call.
// A read blocks until a value is available; there is no timeout.
type InputReader interface {
	ReadValue() (int, error)
}

// VM walks a program tree with an explicit cursor instead of a native
// call stack, so loop bodies re-enter by state transition rather than by
// recursion. The tree is never mutated; only the cursor, the break flag,
// and the machine move.
type VM struct {
	tree    *parser.Tree
	machine *Machine
	input   InputReader
	out     io.Writer

	cursor *parser.Node // nil until the first transition
	brk    bool
	steps  int
}

func NewVM(tree *parser.Tree, machine *Machine, input InputReader, out io.Writer) *VM {
	return &VM{
		tree:    tree,
		machine: machine,
		input:   input,
		out:     out,
	}
}

func (vm *VM) Machine() *Machine {
	return vm.machine
}

// Steps reports how many cursor transitions the last Run performed.
func (vm *VM) Steps() int {
	return vm.steps
}

func (vm *VM) hasStatements() bool {
	return vm.cursor != vm.tree.End
}

// advance is the cursor transition function. It consumes the break flag
// set by the previous execution step.
func (vm *VM) advance() {
	if vm.cursor == nil {
		vm.cursor = vm.tree.Root.First()
		return
	}

	node := vm.cursor
	if len(node.Children) > 0 && !vm.brk {
		vm.cursor = node.First()
		return
	}
	vm.brk = false

	// Leaf, or a loop being exited: climb to the parent and advance.
	// A loop body's last child revisits the loop node itself, so the
	// loop condition is re-evaluated before the body runs again.
	if node.IsLastChild() && node.Parent.Kind == parser.KindLoop {
		vm.cursor = node.Parent
		return
	}
	vm.cursor = node.NextSibling()
}

// exec performs the side effect of the node under the cursor and decides
// the break flag for the next transition.
func (vm *VM) exec(node *parser.Node) error {
	switch node.Kind {
	case parser.KindRoot, parser.KindEnd:
		// no side effect
	case parser.KindLoop:
		if vm.machine.Cell() == 0 {
			vm.brk = true
		}
	case parser.KindLeaf:
		return vm.execLeaf(node.Inst)
	}
	return nil
}

func (vm *VM) execLeaf(inst instruction.Instruction) error {
	switch inst {
	case instruction.MoveRight:
		vm.machine.MoveRight()
	case instruction.MoveLeft:
		vm.machine.MoveLeft()
	case instruction.Increment:
		vm.machine.Add(1)
	case instruction.Decrement:
		vm.machine.Add(-1)
	case instruction.Output:
		v := vm.machine.Cell()
		vm.machine.logOutput(v)
		fmt.Fprintf(vm.out, "%c", rune(v))
	case instruction.Input:
		v, err := vm.input.ReadValue()
		if err != nil {
			return errors.NewInputError(err.Error())
		}
		vm.machine.SetCell(v)
	}
	return nil
}

// Run drives the program to completion: transition, execute, repeat,
// halting exactly when the cursor reaches the End node.
func (vm *VM) Run() error {
	for vm.hasStatements() {
		vm.advance()
		if err := vm.exec(vm.cursor); err != nil {
			return err
		}
		vm.steps++
	}
	return nil
}
