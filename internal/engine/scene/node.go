// Package scene implements the scene graph: transform hierarchies of
// geometry and light nodes, cameras with their controllers, and the
// bindings that push light state into shaders and texture sets each frame.
package scene

import "github.com/go-gl/mathgl/mgl32"

// SceneNode is implemented by *Node and every type embedding Node.
type SceneNode interface {
	sceneNode() *Node
}

// Node is a transform in the scene hierarchy. The global transform is
// cached and kept equal to parent.Global * local for the whole subtree.
type Node struct {
	local    mgl32.Mat4
	global   mgl32.Mat4
	parent   *Node
	children []*Node

	// onGlobalChange runs after the global transform is recomputed.
	onGlobalChange func(global mgl32.Mat4)
}

// NewNode creates a node and attaches it to parent when parent is not nil.
func NewNode(transform mgl32.Mat4, parent SceneNode) *Node {
	n := &Node{}
	n.init(transform, parent)
	return n
}

func (n *Node) init(transform mgl32.Mat4, parent SceneNode) {
	n.local = transform
	n.global = transform
	if p := resolve(parent); p != nil {
		p.AddChild(n)
	}
}

func (n *Node) sceneNode() *Node { return n }

func resolve(s SceneNode) *Node {
	if s == nil {
		return nil
	}
	return s.sceneNode()
}

// Transform returns the transform relative to the parent.
func (n *Node) Transform() mgl32.Mat4 {
	return n.local
}

// SetTransform sets the local transform and refreshes the subtree.
func (n *Node) SetTransform(m mgl32.Mat4) {
	n.local = m
	n.updateGlobal()
}

// GlobalTransform returns the cached world transform.
func (n *Node) GlobalTransform() mgl32.Mat4 {
	return n.global
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AddChild attaches child to n. It does nothing when child is nil, already
// has a parent, is n itself or is an ancestor of n.
func (n *Node) AddChild(child SceneNode) {
	c := resolve(child)
	if c == nil || c.parent != nil {
		return
	}
	for node := n; node != nil; node = node.parent {
		if node == c {
			return
		}
	}
	for _, existing := range n.children {
		if existing == c {
			return
		}
	}
	n.children = append(n.children, c)
	c.parent = n
	c.updateGlobal()
}

// RemoveChild detaches child. It does nothing when child is not a child of n.
func (n *Node) RemoveChild(child SceneNode) {
	c := resolve(child)
	if c == nil || c.parent != n {
		return
	}
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
	c.updateGlobal()
}

// SetParent moves n under parent. A nil parent detaches n. The move is
// rejected, leaving n where it was, when parent is n or one of its
// descendants.
func (n *Node) SetParent(parent SceneNode) {
	p := resolve(parent)
	if p == n.parent {
		return
	}
	for node := p; node != nil; node = node.parent {
		if node == n {
			return
		}
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	if p != nil {
		p.AddChild(n)
	}
}

func (n *Node) updateGlobal() {
	if n.parent != nil {
		n.global = n.parent.global.Mul4(n.local)
	} else {
		n.global = n.local
	}
	if n.onGlobalChange != nil {
		n.onGlobalChange(n.global)
	}
	for _, c := range n.children {
		c.updateGlobal()
	}
}
