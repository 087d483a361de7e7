// Package config handles engine and demo configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Window backends.
const (
	BackendSDL      = "sdl"
	BackendGLFW     = "glfw"
	BackendHeadless = "headless"
)

// Camera controllers.
const (
	ControllerMouse = "mouse"
	ControllerFPS   = "fps"
	ControllerNone  = "none"
)

// Config holds all engine settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
	Demo     DemoConfig     `yaml:"demo"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Backend    string `yaml:"backend"` // sdl, glfw or headless
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RendererConfig holds render pipeline settings.
type RendererConfig struct {
	ClearColor           [4]float32 `yaml:"clear_color"`
	ShadowMapSize        int        `yaml:"shadow_map_size"`
	ShadowFrustumSize    float32    `yaml:"shadow_frustum_size"`
	ShadowNear           float32    `yaml:"shadow_near"`
	ShadowFar            float32    `yaml:"shadow_far"`
	MaxDirectionalLights int        `yaml:"max_directional_lights"`
	MaxPointLights       int        `yaml:"max_point_lights"`
	MaxSpotLights        int        `yaml:"max_spot_lights"`
}

// CameraConfig holds the default camera and controller settings.
type CameraConfig struct {
	FOV              float32 `yaml:"fov"` // degrees
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	Controller       string  `yaml:"controller"` // mouse, fps or none
	RotationSpeed    float32 `yaml:"rotation_speed"`
	ZoomSpeed        float32 `yaml:"zoom_speed"`
	TranslationSpeed float32 `yaml:"translation_speed"`
	MinDistance      float32 `yaml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance"`
}

// LoggingConfig holds logging settings. The rotation settings apply only
// when LogFile is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	JSONFile   bool   `yaml:"json_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DemoConfig holds settings of the demo program.
type DemoConfig struct {
	MaxFrames int  `yaml:"max_frames"` // 0 runs until the window closes
	ShowFPS   bool `yaml:"show_fps"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Backend:    BackendSDL,
			Title:      "gltut",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Renderer: RendererConfig{
			ClearColor:           [4]float32{0.1, 0.1, 0.15, 1.0},
			ShadowMapSize:        2048,
			ShadowFrustumSize:    20,
			ShadowNear:           0.1,
			ShadowFar:            50,
			MaxDirectionalLights: 1,
			MaxPointLights:       1,
			MaxSpotLights:        1,
		},
		Camera: CameraConfig{
			FOV:              45,
			Near:             0.1,
			Far:              100,
			Controller:       ControllerMouse,
			RotationSpeed:    50,
			ZoomSpeed:        50,
			TranslationSpeed: 100,
			MinDistance:      1,
			MaxDistance:      50,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Demo: DemoConfig{
			MaxFrames: 0,
			ShowFPS:   true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW, BackendHeadless:
	default:
		return fmt.Errorf("unknown window backend %q", c.Window.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.ShadowMapSize <= 0 {
		return errors.New("shadow map size must be positive")
	}
	if c.Renderer.ShadowNear <= 0 || c.Renderer.ShadowFar <= c.Renderer.ShadowNear {
		return fmt.Errorf("invalid shadow frustum near %g far %g", c.Renderer.ShadowNear, c.Renderer.ShadowFar)
	}
	if c.Renderer.MaxDirectionalLights < 0 || c.Renderer.MaxPointLights < 0 || c.Renderer.MaxSpotLights < 0 {
		return errors.New("light counts must not be negative")
	}
	if c.Renderer.MaxDirectionalLights+c.Renderer.MaxPointLights+c.Renderer.MaxSpotLights == 0 {
		return errors.New("at least one light kind must be enabled")
	}
	if c.Camera.FOV <= 0 || c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid camera projection fov %g near %g far %g", c.Camera.FOV, c.Camera.Near, c.Camera.Far)
	}
	switch c.Camera.Controller {
	case ControllerMouse, ControllerFPS, ControllerNone:
	default:
		return fmt.Errorf("unknown camera controller %q", c.Camera.Controller)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("log rotation settings must not be negative")
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance <= c.Camera.MinDistance {
		return fmt.Errorf("invalid camera distance range [%g, %g]", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	return nil
}
