package graphics

import "errors"

// Validation errors returned by the managers.
var (
	ErrInvalidGeometry      = errors.New("invalid geometry")
	ErrInvalidShader        = errors.New("invalid shader")
	ErrInvalidTexture       = errors.New("invalid texture")
	ErrInvalidFramebuffer   = errors.New("invalid framebuffer")
	ErrInvalidUniformBuffer = errors.New("invalid uniform buffer")
)
