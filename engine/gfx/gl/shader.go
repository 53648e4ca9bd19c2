package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Vertex: pos2 + premultiplied color4 + uv2.
const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
uniform mat4 uVP;
out vec4 vColor;
out vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// Textures hold premultiplied alpha; blending is ONE, ONE_MINUS_SRC_ALPHA.
const fragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = texture(uTex, vUV) * vColor;
}
` + "\x00"

type program struct {
	id   uint32
	uVP  int32
	uTex int32
}

func newProgram() (program, error) {
	id, err := makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return program{}, err
	}
	return program{
		id:   id,
		uVP:  gl.GetUniformLocation(id, gl.Str("uVP\x00")),
		uTex: gl.GetUniformLocation(id, gl.Str("uTex\x00")),
	}, nil
}

func (p *program) use(vp *[16]float32) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.uVP, 1, false, &vp[0])
	gl.Uniform1i(p.uTex, 0)
}

func (p *program) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
