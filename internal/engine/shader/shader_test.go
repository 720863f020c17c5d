package shader

import (
	"strings"
	"testing"

	"github.com/Faultbox/kopimap/internal/engine/shader/shaders"
)

func TestTerminate(t *testing.T) {
	tests := map[string]string{
		"":           "\x00",
		"offset":     "offset\x00",
		"offset\x00": "offset\x00",
	}
	for in, want := range tests {
		if got := terminate(in); got != want {
			t.Errorf("terminate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInfoLog(t *testing.T) {
	got := infoLog(8, func(buf []byte) {
		copy(buf, "bad\n\x00")
	})
	if got != "bad" {
		t.Errorf("infoLog = %q, want %q", got, "bad")
	}
	if got := infoLog(0, nil); got != "(no log)" {
		t.Errorf("empty infoLog = %q", got)
	}
}

func TestEmbeddedSources(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"map.vert", shaders.MapVertexShader, []string{"#version 410 core", "aPos", "aTexCoord"}},
		{"kopi.vert", shaders.KopiVertexShader, []string{"uniform vec2 offset", "uniform float angle", "uniform float aspect"}},
		{"quad.frag", shaders.QuadFragmentShader, []string{"uniform sampler2D tex", "FragColor"}},
	}

	for _, tt := range tests {
		for _, w := range tt.want {
			if !strings.Contains(tt.src, w) {
				t.Errorf("%s: missing %q", tt.name, w)
			}
		}
	}
}
