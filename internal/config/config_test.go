package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected backend %q, got %q", BackendSDL, cfg.Window.Backend)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be enabled by default")
	}
	if cfg.Renderer.ShadowMapSize != 2048 {
		t.Errorf("expected shadow map size 2048, got %d", cfg.Renderer.ShadowMapSize)
	}
	if cfg.Camera.Controller != ControllerMouse {
		t.Errorf("expected controller %q, got %q", ControllerMouse, cfg.Camera.Controller)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"headless backend", func(c *Config) { c.Window.Backend = BackendHeadless }, false},
		{"glfw backend", func(c *Config) { c.Window.Backend = BackendGLFW }, false},
		{"unknown backend", func(c *Config) { c.Window.Backend = "vulkan" }, true},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, true},
		{"zero shadow map", func(c *Config) { c.Renderer.ShadowMapSize = 0 }, true},
		{"shadow far before near", func(c *Config) { c.Renderer.ShadowFar = 0.05 }, true},
		{"negative lights", func(c *Config) { c.Renderer.MaxPointLights = -1 }, true},
		{"no lights", func(c *Config) {
			c.Renderer.MaxDirectionalLights = 0
			c.Renderer.MaxPointLights = 0
			c.Renderer.MaxSpotLights = 0
		}, true},
		{"zero fov", func(c *Config) { c.Camera.FOV = 0 }, true},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, true},
		{"fps controller", func(c *Config) { c.Camera.Controller = ControllerFPS }, false},
		{"unknown controller", func(c *Config) { c.Camera.Controller = "orbit" }, true},
		{"inverted distance range", func(c *Config) { c.Camera.MinDistance = 100 }, true},
		{"negative log backups", func(c *Config) { c.Logging.MaxBackups = -1 }, true},
		{"unbounded log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gltut.yaml")

	yamlContent := `
window:
  backend: glfw
  width: 1920
  height: 1080
  fullscreen: true
renderer:
  shadow_map_size: 1024
  max_spot_lights: 2
camera:
  fov: 60
  controller: fps
logging:
  level: debug
  log_file: gltut.log
demo:
  max_frames: 300
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Backend != BackendGLFW {
		t.Errorf("expected backend glfw, got %s", cfg.Window.Backend)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	// Values absent from the file keep their defaults.
	if !cfg.Window.VSync {
		t.Error("expected vsync to keep its default")
	}
	if cfg.Renderer.ShadowMapSize != 1024 {
		t.Errorf("expected shadow map size 1024, got %d", cfg.Renderer.ShadowMapSize)
	}
	if cfg.Renderer.MaxSpotLights != 2 {
		t.Errorf("expected 2 spot lights, got %d", cfg.Renderer.MaxSpotLights)
	}
	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Controller != ControllerFPS {
		t.Errorf("expected controller fps, got %s", cfg.Camera.Controller)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "gltut.log" {
		t.Errorf("expected log file 'gltut.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Demo.MaxFrames != 300 {
		t.Errorf("expected max frames 300, got %d", cfg.Demo.MaxFrames)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/gltut.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if filepath.Base(dir) != "gltut" {
		t.Errorf("expected config dir to end in gltut, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "gltut.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find gltut.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "backend flag",
			setup: func() { *flagBackend = BackendHeadless },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Backend != BackendHeadless {
					t.Errorf("expected backend headless, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() { *flagBackend = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "no-vsync flag",
			setup: func() { *flagNoVSync = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.VSync {
					t.Error("expected vsync to be disabled")
				}
			},
			teardown: func() { *flagNoVSync = false },
		},
		{
			name:  "frames flag",
			setup: func() { *flagFrames = 10 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Demo.MaxFrames != 10 {
					t.Errorf("expected max frames 10, got %d", cfg.Demo.MaxFrames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gltut.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		verify func(*testing.T, *Config)
	}{
		{"empty", map[string]string{}, func(t *testing.T, c *Config) {
			if c.Window.Backend != BackendSDL || c.Logging.Level != "info" {
				t.Errorf("expected defaults, got %q %q", c.Window.Backend, c.Logging.Level)
			}
		}},
		{"backend", map[string]string{EnvBackend: BackendGLFW}, func(t *testing.T, c *Config) {
			if c.Window.Backend != BackendGLFW {
				t.Errorf("expected backend %q, got %q", BackendGLFW, c.Window.Backend)
			}
		}},
		{"empty backend ignored", map[string]string{EnvBackend: ""}, func(t *testing.T, c *Config) {
			if c.Window.Backend != BackendSDL {
				t.Errorf("expected backend %q, got %q", BackendSDL, c.Window.Backend)
			}
		}},
		{"logging", map[string]string{EnvLogLevel: "debug", EnvLogFile: "/tmp/gltut.log"}, func(t *testing.T, c *Config) {
			if c.Logging.Level != "debug" || c.Logging.LogFile != "/tmp/gltut.log" {
				t.Errorf("expected debug to /tmp/gltut.log, got %q to %q", c.Logging.Level, c.Logging.LogFile)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			applyEnv(cfg, func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			})
			tt.verify(t, cfg)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  height: 500\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)
	t.Setenv(EnvBackend, BackendHeadless)

	*flagBackend = BackendGLFW
	defer func() { *flagBackend = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Height != 500 {
		t.Errorf("expected height 500 from the environment config file, got %d", cfg.Window.Height)
	}
	if cfg.Window.Backend != BackendGLFW {
		t.Errorf("expected the flag to win over the environment, got %q", cfg.Window.Backend)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gltut.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  backend: dx12\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown backend, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "gltut.yaml")

	cfg := Default()
	cfg.Window.Width = 640
	cfg.Camera.Controller = ControllerNone
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", loaded.Window.Width)
	}
	if loaded.Camera.Controller != ControllerNone {
		t.Errorf("expected controller none, got %s", loaded.Camera.Controller)
	}
}
