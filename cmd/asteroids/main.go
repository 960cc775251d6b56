// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command asteroids draws a planet circled by a belt of instanced
// rocks with a fly camera, rendered through a multisampled offscreen
// framebuffer. Settings may be overridden by an asteroids.toml file
// in the working directory.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"cogentcore.org/asteroids/app"
	"cogentcore.org/asteroids/base/logx"
	"cogentcore.org/asteroids/config"
	"cogentcore.org/asteroids/gpu/glcore"
	"cogentcore.org/asteroids/window"
	"cogentcore.org/asteroids/window/desktop"
)

func init() {
	// glfw and OpenGL must be used from the main thread.
	runtime.LockOSThread()
}

func main() {
	logx.SetDefaultLogger()
	if err := run(); err != nil {
		slog.Error("asteroids", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &config.Config{}
	cfg.Defaults()
	found, err := config.OpenOptional(cfg, config.File)
	if err != nil {
		return err
	}
	if found {
		slog.Info("loaded config", "file", config.File)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win, err := desktop.New(desktop.Options{Title: cfg.Title, Size: cfg.Size(), VSync: cfg.VSync})
	if err != nil {
		return err
	}
	defer win.Release()

	gl, err := glcore.New()
	if err != nil {
		return &window.ResourceCreationError{Resource: "OpenGL context", Err: err}
	}
	a, err := app.New(gl, win, cfg, app.Options{})
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
