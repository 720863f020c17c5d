// Package mesh builds the textured quads the demo draws.
package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Floats per vertex: position (x, y) then texture coordinates (u, v).
const (
	vertexFloats = 4
	floatSize    = int(unsafe.Sizeof(float32(0)))
	vertexStride = vertexFloats * floatSize
)

// QuadIndices draws a quad from Quad's vertices as two triangles.
var QuadIndices = [6]uint32{
	0, 1, 2,
	0, 2, 3,
}

// Quad returns the four vertices of an axis-aligned rectangle centred on
// the origin: top-left, bottom-left, bottom-right, top-right. Texture
// coordinates span the whole texture with v=1 at the top.
func Quad(halfW, halfH float32) []float32 {
	return []float32{
		// position      // uv
		-halfW, halfH, 0, 1,
		-halfW, -halfH, 0, 0,
		halfW, -halfH, 1, 0,
		halfW, halfH, 1, 1,
	}
}

// Mesh is an indexed, static VAO with position and uv attributes.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// New uploads vertices and indices into a new VAO.
func New(vertices []float32, indices []uint32) *Mesh {
	m := &Mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(vertexStride), 0)
	gl.EnableVertexAttribArray(0)

	// Texture coordinate attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexStride), uintptr(2*floatSize))
	gl.EnableVertexAttribArray(1)

	// The element buffer binding is VAO state and stays bound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m
}

// NewQuad uploads Quad(halfW, halfH) with QuadIndices.
func NewQuad(halfW, halfH float32) *Mesh {
	return New(Quad(halfW, halfH), QuadIndices[:])
}

// Draw issues the indexed draw call.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete releases the buffers and the VAO.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
