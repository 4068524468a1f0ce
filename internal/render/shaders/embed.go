// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TilemapVertexShader is the vertex shader for chunk rendering.
//
//go:embed tilemap.vert
var TilemapVertexShader string

// TilemapFragmentShader is the fragment shader for chunk rendering.
//
//go:embed tilemap.frag
var TilemapFragmentShader string
