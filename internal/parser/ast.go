package parser

import "koneko/internal/instruction"

// NodeKind tags the closed set of program-tree node kinds.
type NodeKind byte

const (
	KindRoot NodeKind = iota
	KindLoop
	KindLeaf
	KindEnd
)

var kindNames = [...]string{"Root", "Loop", "Leaf", "End"}

func (k NodeKind) String() string {
	return kindNames[k]
}

// Node is one node of the program tree. Inst is meaningful only for
// KindLeaf. Children are ordered; that ordering drives execution.
type Node struct {
	Kind     NodeKind
	Inst     instruction.Instruction
	Parent   *Node
	Children []*Node
}

// Tree is a completed program tree. End is the synthetic halt marker,
// always the last child of Root. The tree is immutable once built.
type Tree struct {
	Root *Node
	End  *Node
}

// First returns the first child, or nil for a childless node.
func (n *Node) First() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// IsLastChild reports whether n is the final child of its parent.
func (n *Node) IsLastChild() bool {
	return n.Parent != nil && n.Parent.Children[len(n.Parent.Children)-1] == n
}

// NextSibling returns the child after n in its parent's ordering, or nil
// when n is the last child.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.Children
	for i, sib := range siblings {
		if sib == n {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}
