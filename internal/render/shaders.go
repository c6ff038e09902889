package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// maxColors is the size of the palette uniform. Meshes with more regions
// reuse colours cyclically.
const maxColors = 256

// ShaderManager handles OpenGL shader program compilation, linking, and uniform
// management.
type ShaderManager struct {
	program    uint32 // program ID
	uTransform int32  // uniform location for transformation matrix
	uColors    int32
	uNumColors int32
}

// Vertex shader. Applies the uniform transformation matrix and looks up the
// region colour by the ordinal carried in the third vertex component.
var vertexShaderSource = fmt.Sprintf(`
#version 330 core
layout (location = 0) in vec3 aPos;

uniform mat4 uTransform;
uniform vec4 uColors[%d];
uniform int uNumColors;

out vec4 vColor;

void main() {
    gl_Position = uTransform * vec4(aPos.xy, 0.0, 1.0);
    int ordinal = int(aPos.z + 0.5);
    vColor = uColors[(ordinal - 1) %% max(uNumColors, 1)];
}
`, maxColors) + "\x00"

// Fragment shader. Simply applies the vertex-shader forwarded color.
const fragmentShaderSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// NewShaderManager compiles and links the mesh shaders and binds the
// resulting program.
func NewShaderManager() (*ShaderManager, error) {
	sm := &ShaderManager{}

	vertexShader, err := sm.compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := sm.compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	sm.program = gl.CreateProgram()
	gl.AttachShader(sm.program, vertexShader)
	gl.AttachShader(sm.program, fragmentShader)
	gl.LinkProgram(sm.program)

	var status int32
	gl.GetProgramiv(sm.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(sm.program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(sm.program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(sm.program)
		return nil, fmt.Errorf("shader linking failed: %s", strings.TrimRight(logText, "\x00"))
	}

	sm.uTransform = gl.GetUniformLocation(sm.program, gl.Str("uTransform\x00"))
	sm.uColors = gl.GetUniformLocation(sm.program, gl.Str("uColors\x00"))
	sm.uNumColors = gl.GetUniformLocation(sm.program, gl.Str("uNumColors\x00"))
	gl.UseProgram(sm.program)
	return sm, nil
}

// SetTransform sets the uniform transformation matrix.
func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

// SetPalette uploads RGBA quadruples, one per region ordinal. Colours past
// maxColors are dropped.
func (sm *ShaderManager) SetPalette(rgba []float32) {
	n := len(rgba) / 4
	if n > maxColors {
		n = maxColors
	}
	gl.Uniform1i(sm.uNumColors, int32(n))
	if n > 0 {
		gl.Uniform4fv(sm.uColors, int32(n), &rgba[0])
	}
}

// Delete releases the program.
func (sm *ShaderManager) Delete() {
	gl.DeleteProgram(sm.program)
}

// compileShader compiles a single shader from source.
func (sm *ShaderManager) compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
