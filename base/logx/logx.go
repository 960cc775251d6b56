// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the default structured logger,
// with level labels colored for terminals that support it.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging messages should be shown. Messages at levels at or
// above this level will be shown.
var UserLevel = slog.LevelInfo

// SetDefaultLogger sets the default logger to one that writes
// to stderr at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a text handler writing to w at the given level.
// Level labels are colored according to the color profile of w,
// which is plain ASCII for anything that is not a color terminal.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			lv, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(levelString(out, lv))
			return a
		},
	})
}

func levelString(out *termenv.Output, lv slog.Level) string {
	var c termenv.Color
	switch {
	case lv >= slog.LevelError:
		c = out.Color("1")
	case lv >= slog.LevelWarn:
		c = out.Color("3")
	case lv >= slog.LevelInfo:
		c = out.Color("4")
	default:
		c = out.Color("8")
	}
	return out.String(lv.String()).Foreground(c).String()
}
