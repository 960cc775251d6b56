// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/asteroids/gpu"
	"cogentcore.org/asteroids/mesh"
)

// LoadModel loads the Wavefront OBJ file at path, with its material
// library if one can be found, into a model on the GPU. Each texture
// file is loaded once and shared by the meshes that use it; textures
// that fail to load are left blank.
func LoadModel(ctx gpu.Context, path string) (*mesh.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: model: %w", err)
	}
	defer f.Close()

	dec := NewDecoder()
	if err := dec.Decode(f, nil); err != nil {
		return nil, fmt.Errorf("loader: model %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if dec.Matlib != "" {
		mtlPath = resolve(dir, dec.Matlib)
	}
	if mf, err := os.Open(mtlPath); err == nil {
		err = dec.DecodeMaterials(mf)
		mf.Close()
		if err != nil {
			return nil, fmt.Errorf("loader: model %q: %w", path, err)
		}
	} else if dec.Matlib != "" {
		slog.Warn("material library not found, using default materials", "model", path, "mtllib", mtlPath)
	}

	datas := dec.Meshes()
	if len(datas) == 0 {
		return nil, fmt.Errorf("loader: model %q has no faces", path)
	}
	md := mesh.NewModel(ctx, path)
	cache := map[string]*gpu.Texture{}
	for _, data := range datas {
		var txs []mesh.Texture
		for _, m := range []struct {
			file string
			tt   mesh.TextureType
		}{{data.Material.MapKd, mesh.Diffuse}, {data.Material.MapKs, mesh.Specular}} {
			if m.file == "" {
				continue
			}
			tpath := resolve(dir, m.file)
			tx, ok := cache[tpath]
			if !ok {
				tx, _ = TextureFromFile(ctx, tpath)
				cache[tpath] = tx
				md.Textures = append(md.Textures, tx)
			}
			txs = append(txs, mesh.Texture{Handle: tx, Type: m.tt, Path: tpath})
		}
		ms, err := mesh.New(ctx, data.Vertices, data.Indices, txs)
		if err != nil {
			md.Release()
			return nil, fmt.Errorf("loader: model %q: mesh %s: %w", path, data.Name, err)
		}
		md.Meshes = append(md.Meshes, ms)
	}
	for _, w := range dec.Warnings {
		slog.Debug("obj decoder", "model", path, "warning", w)
	}
	slog.Info("loaded model", "path", path, "meshes", len(md.Meshes), "textures", len(md.Textures))
	return md, nil
}

func resolve(dir, file string) string {
	file = filepath.FromSlash(strings.ReplaceAll(file, `\`, "/"))
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}
