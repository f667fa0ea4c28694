package capture

import "github.com/hubastard/xpanel/engine/core"

const vertexShader = `#version 330 core
uniform mat4 pvm;
in vec3 vtx_pos;
in vec2 vtx_tex0;
out vec2 tex_coord;
void main() {
	tex_coord = vtx_tex0;
	gl_Position = pvm * vec4(vtx_pos, 1.0);
}
` + "\x00"

const fragmentShader = `#version 330 core
uniform sampler2D tex;
in vec2 tex_coord;
out vec4 frag_color;
void main() {
	frag_color = texture(tex, tex_coord);
}
` + "\x00"

var shaderAttribs = []core.AttribBinding{
	{Name: "vtx_pos", Location: core.AttribPos},
	{Name: "vtx_tex0", Location: core.AttribTex0},
}
