package scene

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// mesh is a vertex array with its buffers. Vertex data is interleaved
// float32 attributes described by layout, one component count per
// attribute location.
type mesh struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	indexed bool
}

func stride(layout []int32) int32 {
	var n int32
	for _, c := range layout {
		n += c
	}
	return n
}

// vertexCount is the number of vertices drawn for the given data.
func vertexCount(vertices []float32, indices []uint32, layout []int32) int32 {
	if len(indices) > 0 {
		return int32(len(indices))
	}
	s := stride(layout)
	if s == 0 {
		return 0
	}
	return int32(len(vertices)) / s
}

func newMesh(vertices []float32, indices []uint32, layout ...int32) *mesh {
	m := &mesh{
		count:   vertexCount(vertices, indices, layout),
		indexed: len(indices) > 0,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	byteStride := stride(layout) * 4
	var offset int32
	for loc, size := range layout {
		gl.VertexAttribPointer(uint32(loc), size, gl.FLOAT, false, byteStride, gl.PtrOffset(int(offset)))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += size * 4
	}

	// The element buffer binding is part of the VAO, so unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if m.indexed {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}
	return m
}

func (m *mesh) draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *mesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
