package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Geometry is a VAO with one interleaved vertex buffer and an index buffer.
type Geometry struct {
	vao, vbo, ibo uint32
	format        graphics.VertexFormat
	vertexCount   int
	indexCount    int
}

// NewGeometry implements graphics.Backend.
func (d *Device) NewGeometry(format graphics.VertexFormat, vertices []float32, indices []uint32) (graphics.Geometry, error) {
	g := &Geometry{
		format:      append(graphics.VertexFormat(nil), format...),
		vertexCount: len(vertices) / format.Size(),
		indexCount:  len(indices),
	}

	var prevVAO int32
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &prevVAO)
	defer gl.BindVertexArray(uint32(prevVAO))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(format.Stride())
	for i, components := range format {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(components), gl.FLOAT, false, stride, uintptr(format.Offset(i)))
		gl.EnableVertexAttribArray(uint32(i))
	}

	if err := checkError("geometry"); err != nil {
		g.Destroy()
		return nil, fmt.Errorf("uploading geometry: %w", err)
	}
	return g, nil
}

// VertexFormat returns the vertex layout.
func (g *Geometry) VertexFormat() graphics.VertexFormat { return g.format }

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return g.vertexCount }

// IndexCount returns the number of indices drawn.
func (g *Geometry) IndexCount() int { return g.indexCount }

// Draw draws all triangles.
func (g *Geometry) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(g.indexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases the buffers and the VAO.
func (g *Geometry) Destroy() {
	if g.ibo != 0 {
		gl.DeleteBuffers(1, &g.ibo)
		g.ibo = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
