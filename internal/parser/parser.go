// internal/parser/parser.go
package parser

import (
	"koneko/internal/errors"
	"koneko/internal/instruction"
)

// Parser builds a program tree from a flat instruction sequence in a
// single left-to-right pass, using a stack of open loop parents.
type Parser struct {
	instrs []instruction.Instruction
}

func NewParser(instrs []instruction.Instruction) *Parser {
	return &Parser{instrs: instrs}
}

// Build returns the completed tree, or a StructuralError when loop
// markers are unbalanced. No partial tree is ever returned.
func (p *Parser) Build() (*Tree, error) {
	root := &Node{Kind: KindRoot}
	stack := []*Node{root}

	for _, inst := range p.instrs {
		parent := stack[len(stack)-1]
		switch inst {
		case instruction.LoopStart:
			loop := &Node{Kind: KindLoop, Parent: parent}
			parent.Children = append(parent.Children, loop)
			stack = append(stack, loop)
		case instruction.LoopEnd:
			if len(stack) == 1 {
				return nil, errors.NewStructuralError("loop end with no open loop")
			}
			stack = stack[:len(stack)-1]
		default:
			leaf := &Node{Kind: KindLeaf, Inst: inst, Parent: parent}
			parent.Children = append(parent.Children, leaf)
		}
	}

	if len(stack) > 1 {
		return nil, errors.NewStructuralError("unclosed loop at end of program")
	}

	end := &Node{Kind: KindEnd, Parent: root}
	root.Children = append(root.Children, end)
	return &Tree{Root: root, End: end}, nil
}
