package factory

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/graphics/headless"
)

func vertexAt(g *headless.Geometry, i uint32) (pos, normal mgl32.Vec3) {
	stride := uint32(g.VertexFormat().Size())
	v := g.Vertices[i*stride:]
	pos = mgl32.Vec3{v[0], v[1], v[2]}
	if stride >= 6 && g.VertexFormat()[1] == 3 {
		normal = mgl32.Vec3{v[3], v[4], v[5]}
	}
	return pos, normal
}

// windingNormal returns the normal of triangle i given by its
// counter-clockwise winding.
func windingNormal(g *headless.Geometry, i int) (mgl32.Vec3, mgl32.Vec3) {
	a, n := vertexAt(g, g.Indices[i*3])
	b, _ := vertexAt(g, g.Indices[i*3+1])
	c, _ := vertexAt(g, g.Indices[i*3+2])
	return b.Sub(a).Cross(c.Sub(a)), n
}

func TestBox(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name    string
		x, y, z float32
		inward  [3]bool
	}{
		{"outward", 1, 2, 3, [3]bool{}},
		{"inverted", -2, -2, -2, [3]bool{true, true, true}},
		{"one negative axis", -1, 1, 1, [3]bool{true, false, false}},
		{"two negative axes", 1, -1, -1, [3]bool{false, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := env.factory.Geometry.Box(tt.x, tt.y, tt.z)
			if err != nil {
				t.Fatalf("failed to create box: %v", err)
			}
			g := geom.(*headless.Geometry)
			if g.VertexCount() != 24 || g.IndexCount() != 36 {
				t.Fatalf("expected 24 vertices and 36 indices, got %d and %d", g.VertexCount(), g.IndexCount())
			}
			for tri := 0; tri < 12; tri++ {
				wn, n := windingNormal(g, tri)
				if wn.Dot(n) <= 0 {
					t.Errorf("triangle %d: winding disagrees with normal %v", tri, n)
				}
				a, _ := vertexAt(g, g.Indices[tri*3])
				axis := 0
				for i := range n {
					if n[i] != 0 {
						axis = i
					}
				}
				if inward := a.Dot(n) < 0; inward != tt.inward[axis] {
					t.Errorf("triangle %d: expected inward=%t, got %t", tri, tt.inward[axis], inward)
				}
			}
		})
	}

	if _, err := env.factory.Geometry.Box(0, 1, 1); !errors.Is(err, graphics.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestSphere(t *testing.T) {
	env := newTestEnv(t)
	geom, err := env.factory.Geometry.Sphere(2, 3)
	if err != nil {
		t.Fatalf("failed to create sphere: %v", err)
	}
	g := geom.(*headless.Geometry)
	if want := 7 * 13; g.VertexCount() != want {
		t.Errorf("expected %d vertices, got %d", want, g.VertexCount())
	}
	if want := 6 * 12 * 6; g.IndexCount() != want {
		t.Errorf("expected %d indices, got %d", want, g.IndexCount())
	}
	for i := 0; i < g.VertexCount(); i++ {
		pos, n := vertexAt(g, uint32(i))
		if l := pos.Len(); l < 1.999 || l > 2.001 {
			t.Fatalf("vertex %d: expected radius 2, got %f", i, l)
		}
		if !vecNear(pos.Mul(0.5), n) {
			t.Fatalf("vertex %d: expected normal along position, got %v", i, n)
		}
	}
	for tri := 0; tri < g.IndexCount()/3; tri++ {
		wn, _ := windingNormal(g, tri)
		if wn.Len() < 1e-6 {
			// Pole triangles collapse to a line
			continue
		}
		a, _ := vertexAt(g, g.Indices[tri*3])
		if wn.Dot(a) <= 0 {
			t.Fatalf("triangle %d faces inward", tri)
		}
	}

	tests := []struct {
		radius       float32
		subdivisions int
	}{
		{1, 0},
		{0, 1},
		{-1, 2},
	}
	for _, tt := range tests {
		if _, err := env.factory.Geometry.Sphere(tt.radius, tt.subdivisions); !errors.Is(err, graphics.ErrInvalidGeometry) {
			t.Errorf("radius %g subdivisions %d: expected ErrInvalidGeometry, got %v", tt.radius, tt.subdivisions, err)
		}
	}
}

func TestPlaneAndScreenQuad(t *testing.T) {
	env := newTestEnv(t)
	plane, err := env.factory.Geometry.Plane(10, 4, 2)
	if err != nil {
		t.Fatalf("failed to create plane: %v", err)
	}
	p := plane.(*headless.Geometry)
	for tri := 0; tri < 2; tri++ {
		wn, n := windingNormal(p, tri)
		if n != (mgl32.Vec3{0, 1, 0}) || wn.Y() <= 0 {
			t.Errorf("triangle %d: expected to face +Y, got winding %v normal %v", tri, wn, n)
		}
	}
	if _, err := env.factory.Geometry.Plane(0, 1, 1); !errors.Is(err, graphics.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	quad, err := env.factory.Geometry.ScreenQuad()
	if err != nil {
		t.Fatalf("failed to create quad: %v", err)
	}
	q := quad.(*headless.Geometry)
	if q.VertexFormat().Size() != 5 {
		t.Errorf("expected position and texture coordinates, got %v", q.VertexFormat())
	}
	for tri := 0; tri < 2; tri++ {
		if wn, _ := windingNormal(q, tri); wn.Z() <= 0 {
			t.Errorf("triangle %d: expected counter-clockwise, got %v", tri, wn)
		}
	}
}
