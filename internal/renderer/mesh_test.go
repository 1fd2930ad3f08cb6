package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestNewCubeMesh(t *testing.T) {
	mesh, err := NewCubeMesh()
	if err != nil {
		t.Fatalf("NewCubeMesh failed: %v", err)
	}
	if mesh.VertexCount != 36 {
		t.Errorf("Expected 36 vertices, got %d", mesh.VertexCount)
	}
	if Stride(mesh.Layout) != 6 {
		t.Errorf("Expected stride 6, got %d", Stride(mesh.Layout))
	}
}

func TestNewMeshRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		data   []float32
		layout []Attribute
	}{
		{"no attributes", []float32{1, 2, 3}, nil},
		{"ragged data", []float32{1, 2, 3, 4}, []Attribute{{0, 3}}},
		{"empty data", nil, []Attribute{{0, 3}}},
		{"oversized attribute", []float32{1, 2, 3, 4, 5}, []Attribute{{0, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(tt.data, tt.layout...)
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Expected ErrInvalidLayout, got %v", err)
			}
		})
	}
}

func TestCubePositionsCount(t *testing.T) {
	if len(CubePositions) != 10 {
		t.Errorf("Expected 10 cube positions, got %d", len(CubePositions))
	}
}

func TestCubeRadiusCoversCorners(t *testing.T) {
	for i := 0; i < len(CubeVertices); i += 6 {
		x, y, z := CubeVertices[i], CubeVertices[i+1], CubeVertices[i+2]
		if x*x+y*y+z*z > CubeRadius*CubeRadius+1e-5 {
			t.Fatalf("vertex %d lies outside the bounding radius", i/6)
		}
	}
}

func stubGLErrors(t *testing.T, codes ...uint32) {
	t.Helper()
	prev := glGetError
	glGetError = func() uint32 {
		if len(codes) == 0 {
			return gl.NO_ERROR
		}
		code := codes[0]
		codes = codes[1:]
		return code
	}
	t.Cleanup(func() { glGetError = prev })
}

func TestCheckGLErrorClean(t *testing.T) {
	stubGLErrors(t)

	if err := checkGLError("upload mesh"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestCheckGLErrorReportsFirstAndDrains(t *testing.T) {
	stubGLErrors(t, gl.OUT_OF_MEMORY, gl.INVALID_VALUE)

	err := checkGLError("upload mesh")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "0x0505") {
		t.Errorf("Expected GL_OUT_OF_MEMORY in %q", err)
	}
	if err := checkGLError("upload mesh"); err != nil {
		t.Errorf("Error queue should be drained, got %v", err)
	}
}
