package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/renderer"
)

func checkGlobal(t *testing.T, n *Node) {
	t.Helper()
	want := n.Transform()
	if n.Parent() != nil {
		want = n.Parent().GlobalTransform().Mul4(n.Transform())
	}
	if !n.GlobalTransform().ApproxEqual(want) {
		t.Errorf("expected global %v, got %v", want, n.GlobalTransform())
	}
	for _, c := range n.Children() {
		checkGlobal(t, c)
	}
}

func TestTransformPropagation(t *testing.T) {
	root := NewNode(mgl32.Translate3D(1, 0, 0), nil)
	child := NewNode(mgl32.Translate3D(0, 2, 0), root)
	grandchild := NewNode(mgl32.Scale3D(2, 2, 2), child)

	checkGlobal(t, root)
	if got := grandchild.GlobalTransform().Col(3).Vec3(); got != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("expected grandchild at (1,2,0), got %v", got)
	}

	root.SetTransform(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	checkGlobal(t, root)

	child.SetTransform(mgl32.Translate3D(0, 0, 5))
	checkGlobal(t, root)

	root.RemoveChild(child)
	if child.Parent() != nil {
		t.Error("expected removed child to have no parent")
	}
	if !child.GlobalTransform().ApproxEqual(child.Transform()) {
		t.Error("expected detached child global to equal its local transform")
	}
	checkGlobal(t, child)
}

func TestAddChildRejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func() (parent, child *Node)
	}{
		{"self", func() (*Node, *Node) {
			n := NewNode(mgl32.Ident4(), nil)
			return n, n
		}},
		{"already parented", func() (*Node, *Node) {
			other := NewNode(mgl32.Ident4(), nil)
			return NewNode(mgl32.Ident4(), nil), NewNode(mgl32.Ident4(), other)
		}},
		{"ancestor", func() (*Node, *Node) {
			a := NewNode(mgl32.Ident4(), nil)
			b := NewNode(mgl32.Ident4(), a)
			c := NewNode(mgl32.Ident4(), b)
			return c, a
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, child := tt.setup()
			oldParent := child.Parent()
			oldCount := parent.ChildCount()
			parent.AddChild(child)
			if child.Parent() != oldParent {
				t.Errorf("expected parent %p, got %p", oldParent, child.Parent())
			}
			if parent.ChildCount() != oldCount {
				t.Errorf("expected %d children, got %d", oldCount, parent.ChildCount())
			}
		})
	}

	n := NewNode(mgl32.Ident4(), nil)
	n.AddChild(nil)
	var none *Node
	n.AddChild(none)
	if n.ChildCount() != 0 {
		t.Errorf("expected nil children to be ignored, got %d", n.ChildCount())
	}
}

func TestAddChildDuplicate(t *testing.T) {
	parent := NewNode(mgl32.Ident4(), nil)
	child := NewNode(mgl32.Ident4(), parent)
	child.parent = nil
	parent.AddChild(child)
	if parent.ChildCount() != 1 {
		t.Errorf("expected 1 child, got %d", parent.ChildCount())
	}
}

func TestRemoveChildNotOwned(t *testing.T) {
	a := NewNode(mgl32.Ident4(), nil)
	b := NewNode(mgl32.Ident4(), nil)
	c := NewNode(mgl32.Ident4(), b)

	a.RemoveChild(c)
	a.RemoveChild(nil)
	if c.Parent() != b {
		t.Error("expected removal by a non-parent to be ignored")
	}
}

func TestSetParent(t *testing.T) {
	a := NewNode(mgl32.Translate3D(1, 0, 0), nil)
	b := NewNode(mgl32.Translate3D(0, 1, 0), nil)
	c := NewNode(mgl32.Ident4(), a)

	c.SetParent(b)
	if c.Parent() != b || a.ChildCount() != 0 || b.ChildCount() != 1 {
		t.Fatal("expected c to move from a to b")
	}
	if got := c.GlobalTransform().Col(3).Vec3(); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected (0,1,0), got %v", got)
	}

	b.SetParent(c)
	if b.Parent() != nil {
		t.Error("expected moving under a descendant to be rejected")
	}

	c.SetParent(nil)
	if c.Parent() != nil || b.ChildCount() != 0 {
		t.Error("expected nil parent to detach")
	}
}

func TestChildAccess(t *testing.T) {
	root := NewNode(mgl32.Ident4(), nil)
	first := NewNode(mgl32.Ident4(), root)
	NewNode(mgl32.Ident4(), root)

	if root.Child(0) != first {
		t.Error("expected first child at index 0")
	}
	if root.Child(2) != nil || root.Child(-1) != nil {
		t.Error("expected nil for out of range index")
	}
	children := root.Children()
	children[0] = nil
	if root.Child(0) != first {
		t.Error("expected Children to return a copy")
	}
}

func TestGeometryNodeFollowsGlobal(t *testing.T) {
	parent := NewNode(mgl32.Translate3D(0, 0, -3), nil)
	rg := renderer.NewRenderGeometry(nil, nil)
	g := newGeometryNode(rg, mgl32.Translate3D(1, 0, 0), parent)

	if got := rg.Transform().Col(3).Vec3(); got != (mgl32.Vec3{1, 0, -3}) {
		t.Errorf("expected (1,0,-3), got %v", got)
	}
	parent.SetTransform(mgl32.Ident4())
	if !rg.Transform().ApproxEqual(g.GlobalTransform()) {
		t.Error("expected geometry transform to follow the node")
	}
}
