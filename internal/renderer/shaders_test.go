package renderer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewShaderTerminatesSources(t *testing.T) {
	shader := NewShader("vs", "fs\x00")

	if !strings.HasSuffix(shader.vertexSource, "\x00") {
		t.Error("vertex source should be NUL terminated")
	}
	if strings.Count(shader.fragmentSource, "\x00") != 1 {
		t.Error("already terminated source should not gain a second NUL")
	}
	if shader.IsCompiled() {
		t.Error("new shader should not be compiled")
	}
}

func TestInitCubeShaderUniforms(t *testing.T) {
	shader := InitCubeShader()

	if !strings.Contains(shader.vertexSource, "uniform mat4 mvp") {
		t.Error("cube vertex shader should consume mvp")
	}
	if !strings.Contains(shader.fragmentSource, "uniform vec4 ourColor2") {
		t.Error("cube fragment shader should consume ourColor2")
	}
}

func TestLoadShader(t *testing.T) {
	dir := t.TempDir()
	vsPath := filepath.Join(dir, "cube.vs")
	fsPath := filepath.Join(dir, "cube.fs")
	if err := os.WriteFile(vsPath, []byte("vertex"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fsPath, []byte("fragment"), 0o644); err != nil {
		t.Fatal(err)
	}

	shader, err := LoadShader(vsPath, fsPath)
	if err != nil {
		t.Fatalf("LoadShader failed: %v", err)
	}
	if shader.vertexSource != "vertex\x00" || shader.fragmentSource != "fragment\x00" {
		t.Errorf("unexpected sources %q %q", shader.vertexSource, shader.fragmentSource)
	}
}

func TestLoadShaderMissingFile(t *testing.T) {
	_, err := LoadShader(filepath.Join(t.TempDir(), "nope.vs"), "nope.fs")
	if err == nil {
		t.Fatal("expected an error for a missing shader file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist cause, got %v", err)
	}
}
