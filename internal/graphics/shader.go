package graphics

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Define is one #define injected into a shader source at build time.
// Pipeline variants are specialized through these instead of runtime
// uniforms or branches.
type Define struct {
	Name  string
	Value string
}

// Shader represents a linked OpenGL program.
type Shader struct {
	ID uint32
}

// NewShader creates a program from vertex and fragment shader source
// files, injecting the given defines into both stages.
func NewShader(vertexPath, fragmentPath string, defines []Define) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %v", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %v", err)
	}

	vert, err := compileShader(injectDefines(string(vertexSource), defines), gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vertexPath, err)
	}
	frag, err := compileShader(injectDefines(string(fragmentSource), defines), gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fragmentPath, err)
	}

	program, err := linkProgram(vert, frag)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program}, nil
}

// NewComputeShader creates a program from a single compute shader
// source file with the given defines injected.
func NewComputeShader(path string, defines []Define) (*Shader, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read compute shader file: %v", err)
	}

	shader, err := compileShader(injectDefines(string(source), defines), gl.COMPUTE_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	program, err := linkProgram(shader)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program}, nil
}

// injectDefines inserts #define lines directly after the #version
// directive, preserving the defines' order.
func injectDefines(source string, defines []Define) string {
	if len(defines) == 0 {
		return source
	}

	var b strings.Builder
	for _, d := range defines {
		fmt.Fprintf(&b, "#define %s %s\n", d.Name, d.Value)
	}
	block := b.String()

	idx := strings.Index(source, "\n")
	if strings.HasPrefix(strings.TrimSpace(source), "#version") && idx >= 0 {
		return source[:idx+1] + block + source[idx+1:]
	}
	return block + source
}

// Use activates the shader program.
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete frees the program.
func (s *Shader) Delete() {
	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(gl.GetUniformLocation(s.ID, gl.Str(name+"\x00")), value)
}

// SetUint sets an unsigned integer uniform
func (s *Shader) SetUint(name string, value uint32) {
	gl.Uniform1ui(gl.GetUniformLocation(s.ID, gl.Str(name+"\x00")), value)
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, value *float32) {
	gl.UniformMatrix4fv(gl.GetUniformLocation(s.ID, gl.Str(name+"\x00")), 1, false, value)
}

// Helper functions
func linkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	for _, sh := range shaders {
		gl.DeleteShader(sh)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
