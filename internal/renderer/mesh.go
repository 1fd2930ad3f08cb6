package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidLayout = errors.New("renderer: invalid vertex layout")

// Attribute describes one float attribute inside an interleaved vertex.
type Attribute struct {
	Location uint32
	Size     int32 // components, 1-4
}

// Mesh is an interleaved, non-indexed triangle list.
type Mesh struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
	Data        []float32
	Layout      []Attribute
}

// NewMesh validates the layout against data. Nothing is uploaded yet.
func NewMesh(data []float32, layout ...Attribute) (*Mesh, error) {
	stride := Stride(layout)
	if stride == 0 {
		return nil, fmt.Errorf("%w: no attributes", ErrInvalidLayout)
	}
	for _, a := range layout {
		if a.Size < 1 || a.Size > 4 {
			return nil, fmt.Errorf("%w: attribute %d has size %d", ErrInvalidLayout, a.Location, a.Size)
		}
	}
	if len(data) == 0 || len(data)%int(stride) != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of stride %d", ErrInvalidLayout, len(data), stride)
	}
	return &Mesh{
		Data:        data,
		Layout:      layout,
		VertexCount: int32(len(data)) / stride,
	}, nil
}

// Stride is the number of floats per vertex.
func Stride(layout []Attribute) int32 {
	var n int32
	for _, a := range layout {
		n += a.Size
	}
	return n
}

// glGetError is swapped out in tests, which run without a context.
var glGetError = gl.GetError

// checkGLError drains the GL error queue and reports the first error seen.
func checkGLError(op string) error {
	var first uint32
	for code := glGetError(); code != gl.NO_ERROR; code = glGetError() {
		if first == 0 {
			first = code
		}
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("renderer: %s: GL error 0x%04x", op, first)
}

// Upload creates the VAO and VBO. On failure both are released again.
func (m *Mesh) Upload() error {
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)

	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Data)*4, gl.Ptr(m.Data), gl.STATIC_DRAW)

	stride := Stride(m.Layout) * 4
	var offset int
	for _, a := range m.Layout {
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
		gl.EnableVertexAttribArray(a.Location)
		offset += int(a.Size) * 4
	}
	gl.BindVertexArray(0)

	if err := checkGLError("upload mesh"); err != nil {
		m.Delete()
		return err
	}
	return nil
}

func (m *Mesh) Bind() {
	gl.BindVertexArray(m.VAO)
}

func (m *Mesh) Draw() {
	gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
}

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.VAO)
	gl.DeleteBuffers(1, &m.VBO)
	m.VAO, m.VBO = 0, 0
}

// CubeLayout is position (location 0) followed by color (location 1).
var CubeLayout = []Attribute{{Location: 0, Size: 3}, {Location: 1, Size: 3}}

// CubeRadius bounds a unit cube centered on the origin.
const CubeRadius float32 = 0.8660254

// CubeVertices is a unit cube, six faces of two triangles, positions and colors.
var CubeVertices = []float32{
	-0.5, -0.5, -0.5, 1.0, 0.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 0.0, 1.0,
	-0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
	-0.5, -0.5, -0.5, 1.0, 0.0, 0.0,

	-0.5, -0.5, 0.5, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
	-0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, -0.5, 0.5, 1.0, 0.0, 0.0,

	-0.5, 0.5, 0.5, 1.0, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, 1.0, 0.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 1.0, 0.0, 0.0,

	-0.5, -0.5, -0.5, 1.0, 0.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, -0.5, -0.5, 1.0, 0.0, 0.0,

	-0.5, 0.5, -0.5, 1.0, 0.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
	-0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, 0.5, -0.5, 1.0, 0.0, 0.0,
}

// CubePositions are the world positions of the demo's ten cubes.
var CubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// NewCubeMesh builds the cube mesh. The data is static, so the error is only
// possible if CubeVertices or CubeLayout are edited inconsistently.
func NewCubeMesh() (*Mesh, error) {
	return NewMesh(CubeVertices, CubeLayout...)
}
