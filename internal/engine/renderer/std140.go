package renderer

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func putFloats(dst []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

// Std140Vec3 encodes a vec3. The trailing pad is not written.
func Std140Vec3(v mgl32.Vec3) []byte {
	buf := make([]byte, 12)
	putFloats(buf, v[:]...)
	return buf
}

// Std140Vec4 encodes a vec4.
func Std140Vec4(v mgl32.Vec4) []byte {
	buf := make([]byte, 16)
	putFloats(buf, v[:]...)
	return buf
}

// Std140Mat3 encodes a mat3 as three vec4 columns.
func Std140Mat3(m mgl32.Mat3) []byte {
	buf := make([]byte, 48)
	for c := 0; c < 3; c++ {
		col := m.Col(c)
		putFloats(buf[c*16:], col[:]...)
	}
	return buf
}

// Std140Mat4 encodes a column-major mat4.
func Std140Mat4(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	putFloats(buf, m[:]...)
	return buf
}

// Std140Float encodes a scalar.
func Std140Float(v float32) []byte {
	buf := make([]byte, 4)
	putFloats(buf, v)
	return buf
}
