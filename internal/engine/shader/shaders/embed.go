// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MapVertexShader draws the full-screen background quad unchanged.
//
//go:embed map.vert
var MapVertexShader string

// KopiVertexShader rotates, de-skews and translates the icon quad.
//
//go:embed kopi.vert
var KopiVertexShader string

// QuadFragmentShader samples the bound texture. Both quads share it.
//
//go:embed quad.frag
var QuadFragmentShader string
