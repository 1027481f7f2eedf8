package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	// Initial vertex capacity of a stream buffer. Buffers double when an
	// upload does not fit, and never shrink.
	initialVertexCapacity = 1024

	vertexStride = floatsPerVertex * 4 // bytes
)

// buffer is a VBO+VAO pair holding one mesh at a time.
type buffer struct {
	vao, vbo    uint32
	capacity    int   // in vertices
	vertexCount int32 // of the last upload
	usage       uint32
	growths     int
}

func newBuffer(usage uint32) *buffer {
	b := &buffer{usage: usage}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	b.allocate(initialVertexCapacity)

	// Vertex layout: position (2 floats) then texture coordinate (2 floats).
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// allocate resizes the bound VBO's storage, discarding its contents.
func (b *buffer) allocate(vertices int) {
	gl.BufferData(gl.ARRAY_BUFFER, vertices*vertexStride, nil, b.usage)
	b.capacity = vertices
}

// upload replaces the buffer's contents with m, growing the buffer if needed.
func (b *buffer) upload(m mesh) {
	b.vertexCount = m.vertexCount()
	if b.vertexCount == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if n := int(b.vertexCount); n > b.capacity {
		capacity := b.capacity
		for capacity < n {
			capacity *= 2
		}
		renderLogger.Printf("growing buffer %d from %d to %d vertices", b.vbo, b.capacity, capacity)
		b.allocate(capacity)
		b.growths++
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m)*4, gl.Ptr(m))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// draw issues one draw call for the last uploaded mesh.
func (b *buffer) draw() {
	if b.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.vertexCount)
	gl.BindVertexArray(0)
}

func (b *buffer) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}
