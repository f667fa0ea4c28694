package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xpanel/engine/core"
)

// chromeVertexSource and chromeFragmentSource draw tinted, optionally
// textured quads for the window chrome.
const chromeVertexSource = `
#version 330 core
uniform mat4 pvm;
in vec3 vtx_pos;
in vec2 vtx_tex0;
out vec2 tex_coord;
void main() {
    tex_coord = vtx_tex0;
    gl_Position = pvm * vec4(vtx_pos, 1.0);
}
` + "\x00"

const chromeFragmentSource = `
#version 330 core
uniform sampler2D tex;
uniform vec4 tint;
uniform int textured;
in vec2 tex_coord;
out vec4 frag_color;
void main() {
    if (textured != 0) {
        frag_color = texture(tex, tex_coord) * tint;
    } else {
        frag_color = tint;
    }
}
` + "\x00"

func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(cstr(src))
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

// makeProgram compiles and links a program, pinning attribs to their
// locations before linking.
func makeProgram(vsSrc, fsSrc string, attribs ...core.AttribBinding) (uint32, error) {
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
	for _, a := range attribs {
		gl.BindAttribLocation(prog, a.Location, gl.Str(cstr(a.Name)))
	}
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

func uniform(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, gl.Str(cstr(name)))
}
