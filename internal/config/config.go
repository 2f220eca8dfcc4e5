package config

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lucasb-eyer/go-colorful"
)

// Scene constants. These are the values the demo has always shipped with; they
// are kept here by name so a config file can override them individually.
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowTitle  = "spin-sphere"

	DefaultSphereRadius    = 3.0
	DefaultSphereSegments  = 64
	DefaultSphereColor     = "#00ff83"
	DefaultSphereRoughness = 0.5

	DefaultLightColor     = "#ffffff"
	DefaultLightIntensity = 150.0
	DefaultLightDistance  = 100.0

	DefaultFOV     = 45.0
	DefaultNear    = 0.1
	DefaultFar     = 100.0
	DefaultCameraZ = 20.0

	DefaultDampingFactor   = 0.05
	DefaultAutoRotateSpeed = 5.0

	// DefaultBlueChannel is the fixed blue component of pointer-driven colors.
	DefaultBlueChannel = 150
	// DefaultTransitionDuration is in seconds, for both color and intro steps.
	DefaultTransitionDuration = 1.0

	DefaultBackground = "#000000"

	// MaxStage is the last tutorial iteration; it enables every feature.
	MaxStage = 4
)

// Settings is the full configuration of one demo run.
type Settings struct {
	Stage      int                `yaml:"stage"`
	Window     WindowSettings     `yaml:"window"`
	Renderer   RendererSettings   `yaml:"renderer"`
	Sphere     SphereSettings     `yaml:"sphere"`
	Light      LightSettings      `yaml:"light"`
	Camera     CameraSettings     `yaml:"camera"`
	Resize     ResizeSettings     `yaml:"resize"`
	Controls   ControlSettings    `yaml:"controls"`
	Intro      IntroSettings      `yaml:"intro"`
	ColorDrive ColorDriveSettings `yaml:"color_drive"`
}

type WindowSettings struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	// FPSLimit caps the frame rate; 0 keeps vsync pacing.
	FPSLimit int `yaml:"fps_limit"`
	// SlowFrameMillis is the budget above which a frame is logged with its top tasks.
	SlowFrameMillis int `yaml:"slow_frame_ms"`
}

type RendererSettings struct {
	// PixelRatio of 0 follows the display (framebuffer size / window size).
	PixelRatio float32 `yaml:"pixel_ratio"`
	Background string  `yaml:"background"`
}

type SphereSettings struct {
	Radius         float32 `yaml:"radius"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
	Color          string  `yaml:"color"`
	Roughness      float32 `yaml:"roughness"`
}

type LightSettings struct {
	Color     string     `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Distance  float32    `yaml:"distance"`
	Position  [3]float32 `yaml:"position"`
}

type CameraSettings struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type ResizeSettings struct {
	Enabled bool `yaml:"enabled"`
}

type ControlSettings struct {
	Enabled         bool    `yaml:"enabled"`
	EnableDamping   bool    `yaml:"enable_damping"`
	DampingFactor   float32 `yaml:"damping_factor"`
	EnablePan       bool    `yaml:"enable_pan"`
	EnableZoom      bool    `yaml:"enable_zoom"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

type IntroSettings struct {
	Enabled bool `yaml:"enabled"`
	// StepDuration is the shared default duration of each timeline step, in seconds.
	StepDuration float32  `yaml:"step_duration"`
	Brand        string   `yaml:"brand"`
	Links        []string `yaml:"links"`
	Title        string   `yaml:"title"`
}

type ColorDriveSettings struct {
	Enabled bool  `yaml:"enabled"`
	Blue    uint8 `yaml:"blue"`
	// Duration of each color transition, in seconds.
	Duration float32 `yaml:"duration"`
}

// Defaults returns the configuration of the final iteration, with every feature on.
func Defaults() Settings {
	return Settings{
		Stage: MaxStage,
		Window: WindowSettings{
			Width:           DefaultWindowWidth,
			Height:          DefaultWindowHeight,
			Title:           DefaultWindowTitle,
			Resizable:       true,
			SlowFrameMillis: 16,
		},
		Renderer: RendererSettings{
			PixelRatio: 2,
			Background: DefaultBackground,
		},
		Sphere: SphereSettings{
			Radius:         DefaultSphereRadius,
			WidthSegments:  DefaultSphereSegments,
			HeightSegments: DefaultSphereSegments,
			Color:          DefaultSphereColor,
			Roughness:      DefaultSphereRoughness,
		},
		Light: LightSettings{
			Color:     DefaultLightColor,
			Intensity: DefaultLightIntensity,
			Distance:  DefaultLightDistance,
			Position:  [3]float32{0, 10, 10},
		},
		Camera: CameraSettings{
			FOV:      DefaultFOV,
			Near:     DefaultNear,
			Far:      DefaultFar,
			Position: [3]float32{0, 0, DefaultCameraZ},
		},
		Resize: ResizeSettings{Enabled: true},
		Controls: ControlSettings{
			Enabled:         true,
			EnableDamping:   true,
			DampingFactor:   DefaultDampingFactor,
			EnablePan:       false,
			EnableZoom:      false,
			AutoRotate:      true,
			AutoRotateSpeed: DefaultAutoRotateSpeed,
		},
		Intro: IntroSettings{
			Enabled:      true,
			StepDuration: DefaultTransitionDuration,
			Brand:        "Sphere",
			Links:        []string{"Explore", "Create"},
			Title:        "Give it a spin",
		},
		ColorDrive: ColorDriveSettings{
			Enabled:  true,
			Blue:     DefaultBlueChannel,
			Duration: DefaultTransitionDuration,
		},
	}
}

// ForStage returns the preset for tutorial iteration n (1..MaxStage).
// Each iteration adds features on top of the previous one.
func ForStage(n int) (Settings, error) {
	if n < 1 || n > MaxStage {
		return Settings{}, fmt.Errorf("stage %d out of range [1, %d]", n, MaxStage)
	}

	base := Defaults()
	var s Settings
	if err := copier.CopyWithOption(&s, &base, copier.Option{DeepCopy: true}); err != nil {
		return Settings{}, fmt.Errorf("copy defaults: %w", err)
	}
	s.Stage = n

	if n < 4 {
		s.Intro.Enabled = false
		s.ColorDrive.Enabled = false
	}
	if n < 3 {
		s.Controls.Enabled = false
	}
	if n < 2 {
		s.Resize.Enabled = false
		s.Window.Resizable = false
		s.Renderer.PixelRatio = 1
	}
	return s, nil
}

// Validate reports the first setting that cannot produce a working scene.
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Window.FPSLimit < 0 {
		return fmt.Errorf("fps_limit must not be negative, got %d", s.Window.FPSLimit)
	}
	if s.Renderer.PixelRatio < 0 {
		return fmt.Errorf("pixel_ratio must not be negative, got %v", s.Renderer.PixelRatio)
	}
	if s.Sphere.Radius <= 0 {
		return fmt.Errorf("sphere radius must be positive, got %v", s.Sphere.Radius)
	}
	if s.Sphere.WidthSegments < 3 || s.Sphere.HeightSegments < 2 {
		return fmt.Errorf("sphere needs at least 3x2 segments, got %dx%d", s.Sphere.WidthSegments, s.Sphere.HeightSegments)
	}
	if s.Sphere.Roughness < 0 || s.Sphere.Roughness > 1 {
		return fmt.Errorf("sphere roughness must be in [0, 1], got %v", s.Sphere.Roughness)
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %v", s.Camera.FOV)
	}
	if s.Camera.Near <= 0 || s.Camera.Near >= s.Camera.Far {
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%v far=%v", s.Camera.Near, s.Camera.Far)
	}
	if s.Controls.Enabled && (s.Controls.DampingFactor <= 0 || s.Controls.DampingFactor > 1) {
		return fmt.Errorf("damping_factor must be in (0, 1], got %v", s.Controls.DampingFactor)
	}
	if s.Intro.Enabled && s.Intro.StepDuration <= 0 {
		return fmt.Errorf("intro step_duration must be positive, got %v", s.Intro.StepDuration)
	}
	if s.ColorDrive.Enabled && s.ColorDrive.Duration <= 0 {
		return fmt.Errorf("color_drive duration must be positive, got %v", s.ColorDrive.Duration)
	}
	for name, hex := range map[string]string{
		"sphere color":        s.Sphere.Color,
		"light color":         s.Light.Color,
		"renderer background": s.Renderer.Background,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%s %q: %w", name, hex, err)
		}
	}
	return nil
}
