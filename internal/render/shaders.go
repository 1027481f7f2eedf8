package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShaderManager handles OpenGL shader program compilation, linking, and uniform
// management.
type ShaderManager struct {
	program uint32

	// Uniform locations.
	uTransform int32
	uColor     int32
	uTextured  int32
	uTexture   int32
}

// Vertex shader. Applies the uniform transformation matrix and forwards the
// texture coordinate.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uTransform;

out vec2 vUV;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

// Fragment shader. Either samples the photo texture, taking alpha from the
// uniform colour, or fills with the uniform colour.
const fragmentShaderSource = `
#version 410 core
in vec2 vUV;
out vec4 FragColor;

uniform vec4 uColor;
uniform bool uTextured;
uniform sampler2D uTexture;

void main() {
    if (uTextured) {
        FragColor = vec4(texture(uTexture, vUV).rgb, uColor.a);
    } else {
        FragColor = uColor;
    }
}
` + "\x00"

// NewShaderManager compiles and links the shader program and binds it.
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
		return nil, fmt.Errorf("shader linking failed: %s", logText)
	}

	sm.uTransform = gl.GetUniformLocation(sm.program, gl.Str("uTransform\x00"))
	sm.uColor = gl.GetUniformLocation(sm.program, gl.Str("uColor\x00"))
	sm.uTextured = gl.GetUniformLocation(sm.program, gl.Str("uTextured\x00"))
	sm.uTexture = gl.GetUniformLocation(sm.program, gl.Str("uTexture\x00"))
	gl.UseProgram(sm.program)
	gl.Uniform1i(sm.uTexture, 0) // texture unit 0
	return sm, nil
}

func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

func (sm *ShaderManager) SetColor(c [4]float32) {
	gl.Uniform4f(sm.uColor, c[0], c[1], c[2], c[3])
}

// SetTexture binds tex for sampling, or switches to flat colour fills when
// tex is zero.
func (sm *ShaderManager) SetTexture(tex uint32) {
	if tex == 0 {
		gl.Uniform1i(sm.uTextured, 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(sm.uTextured, 1)
}

func (sm *ShaderManager) Delete() { gl.DeleteProgram(sm.program) }

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
		return 0, fmt.Errorf("shader compilation failed: %s", logText)
	}
	return shader, nil
}
