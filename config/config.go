// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the scene and render configuration, with
// compiled-in defaults that may be overridden by TOML files.
package config

import (
	"fmt"
	"image"
	"io/fs"
	"os"

	"cogentcore.org/asteroids/base/errors"
	"cogentcore.org/asteroids/belt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// File is the name of the optional override file
// read from the working directory.
const File = "asteroids.toml"

// Config is the configuration of the scene and the renderer.
type Config struct {

	// Title is the window title.
	Title string

	// Width and Height are the window and render target size in pixels.
	Width  int
	Height int

	// Samples is the number of MSAA samples per pixel.
	Samples int

	// VSync waits for the display refresh on each buffer swap.
	VSync bool

	// Rocks is the number of rock instances in the belt.
	Rocks int

	// Radius is the radius of the belt ring.
	Radius float32

	// Offset bounds the random displacement of rocks from the ring.
	Offset float32

	// Seed seeds the belt generator; 0 uses the wall clock.
	Seed uint64

	// Camera is the initial camera position.
	Camera mgl32.Vec3

	// PlanetOffset and PlanetScale place the planet: it is
	// translated by the offset, then scaled uniformly.
	PlanetOffset mgl32.Vec3
	PlanetScale  float32

	// SceneClear is the clear color of the scene.
	SceneClear mgl32.Vec4

	// ScreenClear is the clear color of the window behind the scene.
	ScreenClear mgl32.Vec4

	// Near and Far are the clip plane distances.
	Near float32
	Far  float32

	// PlanetModel and RockModel are the paths of the OBJ models.
	PlanetModel string
	RockModel   string

	// ShaderDir is a directory to read the shader sources from;
	// empty uses the built-in shaders.
	ShaderDir string

	// StrictShaders makes shader compile and link errors fatal;
	// otherwise they are logged and the failing program draws nothing.
	StrictShaders bool
}

// Defaults sets the compiled-in configuration.
func (cfg *Config) Defaults() {
	bp := belt.DefaultParams()
	*cfg = Config{
		Title:         "asteroids",
		Width:         800,
		Height:        600,
		Samples:       4,
		VSync:         true,
		Rocks:         bp.Count,
		Radius:        bp.Radius,
		Offset:        bp.Offset,
		Camera:        mgl32.Vec3{0, 20, 200},
		PlanetOffset:  mgl32.Vec3{0, -3, 0},
		PlanetScale:   10,
		SceneClear:    mgl32.Vec4{0.1, 0.1, 0.1, 1},
		ScreenClear:   mgl32.Vec4{1, 1, 1, 1},
		Near:          0.1,
		Far:           1000,
		PlanetModel:   "models/planet/planet.obj",
		RockModel:     "models/rock/rock.obj",
		StrictShaders: false,
	}
}

// Size returns the render size.
func (cfg *Config) Size() image.Point {
	return image.Pt(cfg.Width, cfg.Height)
}

// Aspect returns the width to height ratio of the render size.
func (cfg *Config) Aspect() float32 {
	return float32(cfg.Width) / float32(cfg.Height)
}

// Belt returns the belt generator parameters.
func (cfg *Config) Belt() belt.Params {
	return belt.Params{Count: cfg.Rocks, Radius: cfg.Radius, Offset: cfg.Offset}
}

// Validate returns an error describing every invalid setting.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid size %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.Samples < 1 {
		errs = append(errs, fmt.Errorf("config: Samples must be at least 1, got %d", cfg.Samples))
	}
	if cfg.Rocks < 0 {
		errs = append(errs, fmt.Errorf("config: Rocks must not be negative, got %d", cfg.Rocks))
	}
	if cfg.Offset < 0 {
		errs = append(errs, fmt.Errorf("config: Offset must not be negative, got %g", cfg.Offset))
	}
	if cfg.Near <= 0 || cfg.Far <= cfg.Near {
		errs = append(errs, fmt.Errorf("config: invalid clip planes near %g far %g", cfg.Near, cfg.Far))
	}
	return errors.Join(errs...)
}

// Open decodes the given TOML files into cfg in order, so later
// files override earlier ones. Only the settings present in a file
// change; unknown keys are an error.
func Open(cfg *Config, files ...string) error {
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg)
		f.Close()
		if err != nil {
			return fmt.Errorf("config: %s: %w", file, err)
		}
	}
	return nil
}

// OpenOptional is like [Open] for a single file that may not exist,
// returning whether it was found.
func OpenOptional(cfg *Config, file string) (bool, error) {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return true, Open(cfg, file)
}

// Save writes cfg as TOML to file.
func Save(cfg *Config, file string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0666)
}
