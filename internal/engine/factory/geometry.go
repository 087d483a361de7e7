package factory

import (
	"fmt"
	"math"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// GeometryFactory builds primitive meshes. Lit primitives use the
// VertexFormatPos3Norm3Tex2 layout.
type GeometryFactory struct {
	device graphics.Device
}

// Faces in +Z, -Z, -X, +X, +Y, -Y order, four vertices each.
var boxCorners = [24][3]float32{
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1},
	{1, -1, -1}, {1, -1, 1}, {1, 1, 1}, {1, 1, -1},
	{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1},
	{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
}

var boxNormals = [6][3]float32{
	{0, 0, 1}, {0, 0, -1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
}

// boxNormalAxis is the axis each face normal lies on.
var boxNormalAxis = [6]int{2, 2, 0, 0, 1, 1}

var boxIndices = [36]uint32{
	0, 1, 2, 2, 3, 0,
	5, 4, 6, 6, 4, 7,
	8, 9, 10, 10, 11, 8,
	13, 12, 14, 14, 12, 15,
	17, 16, 18, 18, 16, 19,
	20, 21, 22, 22, 23, 20,
}

var quadTexCoords = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Box creates a box centered at the origin. A negative size turns the two
// faces across that axis inward, so Box(-1, -1, -1) is seen from inside.
func (f *GeometryFactory) Box(x, y, z float32) (graphics.Geometry, error) {
	if x == 0 || y == 0 || z == 0 {
		return nil, fmt.Errorf("%w: box size %gx%gx%g", graphics.ErrInvalidGeometry, x, y, z)
	}
	half := [3]float32{x / 2, y / 2, z / 2}
	var det float32 = 1
	for _, h := range half {
		if h < 0 {
			det = -det
		}
	}

	vertices := make([]float32, 0, 24*8)
	for i, c := range boxCorners {
		n := boxNormals[i/4]
		t := quadTexCoords[i%4]
		vertices = append(vertices,
			c[0]*half[0], c[1]*half[1], c[2]*half[2],
			n[0], n[1], n[2],
			t[0], t[1])
	}

	indices := make([]uint32, 0, len(boxIndices))
	for face := 0; face < 6; face++ {
		tri := boxIndices[face*6 : face*6+6]
		// Mirroring flips the winding unless the face normal axis is mirrored
		// an odd number of times along with it.
		if det*sign(half[boxNormalAxis[face]]) < 0 {
			indices = append(indices, tri[0], tri[2], tri[1], tri[3], tri[5], tri[4])
			continue
		}
		indices = append(indices, tri...)
	}
	return f.device.Geometries().Create(graphics.VertexFormatPos3Norm3Tex2, vertices, indices)
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// Sphere creates a UV sphere with 2*subdivisions rings and 4*subdivisions
// segments. Texture coordinates wrap once around the equator.
func (f *GeometryFactory) Sphere(radius float32, subdivisions int) (graphics.Geometry, error) {
	if subdivisions < 1 {
		return nil, fmt.Errorf("%w: sphere subdivisions %d < 1", graphics.ErrInvalidGeometry, subdivisions)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: sphere radius %g", graphics.ErrInvalidGeometry, radius)
	}
	lat := 2 * subdivisions
	lon := 4 * subdivisions
	step := math.Pi / float64(lat)

	vertices := make([]float32, 0, (lat+1)*(lon+1)*8)
	for i := 0; i <= lat; i++ {
		latitude := step*float64(i) - math.Pi/2
		for j := 0; j <= lon; j++ {
			longitude := step * float64(j)
			nx := float32(math.Cos(latitude) * math.Cos(longitude))
			ny := float32(math.Sin(latitude))
			nz := float32(math.Cos(latitude) * math.Sin(longitude))
			vertices = append(vertices,
				radius*nx, radius*ny, radius*nz,
				nx, ny, nz,
				float32(j)/float32(lon), float32(i)/float32(lat))
		}
	}

	ring := uint32(lon + 1)
	indices := make([]uint32, 0, lat*lon*6)
	for i := uint32(0); i < uint32(lat); i++ {
		lower, upper := i*ring, (i+1)*ring
		for j := uint32(1); j < ring; j++ {
			indices = append(indices,
				lower+j, lower+j-1, upper+j,
				upper+j, lower+j-1, upper+j-1)
		}
	}
	return f.device.Geometries().Create(graphics.VertexFormatPos3Norm3Tex2, vertices, indices)
}

// Plane creates a horizontal rectangle facing +Y. Texture coordinates
// repeat texRepeat times along each side.
func (f *GeometryFactory) Plane(x, z, texRepeat float32) (graphics.Geometry, error) {
	if x <= 0 || z <= 0 {
		return nil, fmt.Errorf("%w: plane size %gx%g", graphics.ErrInvalidGeometry, x, z)
	}
	hx, hz, r := x/2, z/2, texRepeat
	vertices := []float32{
		-hx, 0, hz, 0, 1, 0, 0, 0,
		hx, 0, hz, 0, 1, 0, r, 0,
		hx, 0, -hz, 0, 1, 0, r, r,
		-hx, 0, -hz, 0, 1, 0, 0, r,
	}
	return f.device.Geometries().Create(graphics.VertexFormatPos3Norm3Tex2, vertices, []uint32{0, 1, 2, 2, 3, 0})
}

// ScreenQuad creates a quad covering clip space, in VertexFormatPos3Tex2.
func (f *GeometryFactory) ScreenQuad() (graphics.Geometry, error) {
	vertices := []float32{
		1, 1, 0, 1, 1,
		1, -1, 0, 1, 0,
		-1, -1, 0, 0, 0,
		-1, 1, 0, 0, 1,
	}
	return f.device.Geometries().Create(graphics.VertexFormatPos3Tex2, vertices, []uint32{0, 3, 1, 1, 3, 2})
}
