// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The OBJ decoder is based on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/asteroids/base/errors"
	"cogentcore.org/asteroids/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Decoder decodes Wavefront OBJ files (*.obj) and their material
// libraries (*.mtl). Only the polygonal geometry and the diffuse and
// specular texture maps are used. Basic format info:
// https://en.wikipedia.org/wiki/Wavefront_.obj_file
type Decoder struct {
	Objects   []Object             // decoded objects
	Matlib    string               // name of the material lib
	Materials map[string]*Material // maps material name to object
	Vertices  []mgl32.Vec3         // vertex positions
	Normals   []mgl32.Vec3         // vertex normals
	Uvs       []mgl32.Vec2         // vertex texture coordinates
	Warnings  []string             // warning messages

	line       int       // current line number
	objCurrent *Object   // current object
	matCurrent *Material // current material
}

// Object is one decoded object or group.
type Object struct {
	Name  string
	Faces []Face
}

// Face is a polygon, as zero-based indices into the decoder's
// arrays; missing uv or normal indices are noIndex.
type Face struct {
	Vertices []int
	Uvs      []int
	Normals  []int
	Material string
}

// Material holds the parts of an MTL material used for rendering.
type Material struct {
	Name      string
	Diffuse   mgl32.Vec3 // Kd
	Specular  mgl32.Vec3 // Ks
	Shininess float32    // Ns
	Opacity   float32    // d
	MapKd     string     // diffuse texture file
	MapKs     string     // specular texture file
}

// MeshData is the geometry of one mesh of a decoded model: the faces
// of one object that share a material, triangulated.
type MeshData struct {
	Name     string
	Material *Material
	Vertices []mesh.Vertex
	Indices  []uint32
}

const (
	blanks  = "\r\n\t "
	noIndex = -1
	objType = "obj"
	mtlType = "mtl"
)

// defaultMaterial is used by faces without a known material.
var defaultMaterial = &Material{
	Name:      "default",
	Diffuse:   mgl32.Vec3{0.63, 0.63, 0.63},
	Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
	Shininess: 30,
	Opacity:   1,
}

// NewDecoder returns a new empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{Materials: map[string]*Material{}}
}

// Decode parses the obj data and then the mtl data if not nil.
// Materials that the mtl data does not define use a default.
func (dec *Decoder) Decode(obj, mtl io.Reader) error {
	if obj == nil {
		return errors.New("obj.Decoder: no obj data")
	}
	if err := dec.parse(obj, dec.parseObjLine); err != nil {
		return err
	}
	if mtl != nil {
		return dec.DecodeMaterials(mtl)
	}
	return nil
}

// DecodeMaterials parses mtl data, for the material library
// named by [Decoder.Matlib] after decoding the obj data.
func (dec *Decoder) DecodeMaterials(mtl io.Reader) error {
	dec.matCurrent = nil
	return dec.parse(mtl, dec.parseMtlLine)
}

// Meshes returns the triangulated meshes, one for each run of faces
// of an object with the same material. Vertices are shared between
// faces when their position, uv and normal indices all match.
// Faces without normals get the flat face normal.
func (dec *Decoder) Meshes() []MeshData {
	var mds []MeshData
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		var md *MeshData
		var shared map[[3]int]uint32
		matName := ""
		for fi := range ob.Faces {
			face := &ob.Faces[fi]
			if md == nil || face.Material != matName {
				matName = face.Material
				mds = append(mds, MeshData{Name: fmt.Sprintf("%s_%d", ob.Name, len(mds)), Material: dec.material(matName)})
				md = &mds[len(mds)-1]
				shared = map[[3]int]uint32{}
			}
			dec.addFace(md, shared, face)
		}
	}
	return mds
}

// addFace appends the face to md as a triangle fan around its first vertex.
func (dec *Decoder) addFace(md *MeshData, shared map[[3]int]uint32, face *Face) {
	nrm := dec.faceNormal(face)
	idxs := make([]uint32, len(face.Vertices))
	for i := range face.Vertices {
		key := [3]int{face.Vertices[i], face.Uvs[i], face.Normals[i]}
		if key[2] != noIndex {
			if ix, ok := shared[key]; ok {
				idxs[i] = ix
				continue
			}
		}
		vtx := mesh.Vertex{Position: dec.Vertices[key[0]], Normal: nrm}
		if key[1] != noIndex && key[1] < len(dec.Uvs) {
			vtx.TexCoord = dec.Uvs[key[1]]
		}
		if key[2] != noIndex && key[2] < len(dec.Normals) {
			vtx.Normal = dec.Normals[key[2]]
		}
		ix := uint32(len(md.Vertices))
		md.Vertices = append(md.Vertices, vtx)
		if key[2] != noIndex {
			shared[key] = ix
		}
		idxs[i] = ix
	}
	for i := 2; i < len(idxs); i++ {
		md.Indices = append(md.Indices, idxs[0], idxs[i-1], idxs[i])
	}
}

func (dec *Decoder) faceNormal(face *Face) mgl32.Vec3 {
	a := dec.Vertices[face.Vertices[0]]
	b := dec.Vertices[face.Vertices[1]]
	c := dec.Vertices[face.Vertices[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// material returns the named material, warning and
// using the default if it is not defined.
func (dec *Decoder) material(name string) *Material {
	if mat, ok := dec.Materials[name]; ok && mat != nil {
		return mat
	}
	if name != defaultMaterial.Name {
		dec.appendWarn(objType, "could not find material: "+name+", using default material")
	}
	return defaultMaterial
}

// parse reads the lines from the specified reader and dispatch them
// to the specified line parser.
func (dec *Decoder) parse(reader io.Reader, parseLine func(string) error) error {
	bufin := bufio.NewReader(reader)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		if perr := parseLine(line); perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// parseObjLine parses an obj file line, dispatching to specific parsers.
func (dec *Decoder) parseObjLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch ltype := fields[0]; ltype {
	case "mtllib":
		return dec.parseMatlib(fields[1:])
	// groups are treated as objects
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseVec3(fields[1:], &dec.Vertices, "v")
	case "vn":
		return dec.parseVec3(fields[1:], &dec.Normals, "vn")
	case "vt":
		return dec.parseTex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		return dec.parseUsemtl(fields[1:])
	case "s":
		// smoothing groups do not affect the stored normals
	default:
		dec.appendWarn(objType, "field not supported: "+ltype)
	}
	return nil
}

// mtllib <name>
func (dec *Decoder) parseMatlib(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("mtllib with no fields")
	}
	dec.Matlib = strings.Join(fields, " ")
	return nil
}

// o <name>
func (dec *Decoder) parseObject(fields []string) error {
	name := fmt.Sprintf("unnamed%d", dec.line)
	if len(fields) > 0 {
		name = fields[0]
	}
	dec.Objects = append(dec.Objects, Object{Name: name})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

// v <x> <y> <z> [w], vn <x> <y> <z>
func (dec *Decoder) parseVec3(fields []string, dst *[]mgl32.Vec3, ltype string) error {
	if len(fields) < 3 {
		return dec.formatError("less than 3 values in '" + ltype + "' line")
	}
	var v mgl32.Vec3
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError(err.Error())
		}
		v[i] = float32(val)
	}
	*dst = append(*dst, v)
	return nil
}

// vt <u> <v> [w]
func (dec *Decoder) parseTex(fields []string) error {
	if len(fields) < 2 {
		return dec.formatError("less than 2 texture coords in 'vt' line")
	}
	var v mgl32.Vec2
	for i, f := range fields[:2] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError(err.Error())
		}
		v[i] = float32(val)
	}
	dec.Uvs = append(dec.Uvs, v)
	return nil
}

// parseIndex converts a one-based or negative relative OBJ index
// into a zero-based index into an array of n values.
func (dec *Decoder) parseIndex(s string, n int, what string) (int, error) {
	val, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	var ix int
	switch {
	case val > 0:
		ix = int(val - 1)
	case val < 0:
		ix = n + int(val)
	default:
		return 0, dec.formatError("face " + what + " index value equal to 0")
	}
	if ix < 0 || ix >= n {
		return 0, dec.formatError(fmt.Sprintf("face %s index %d out of range", what, val))
	}
	return ix, nil
}

// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.objCurrent == nil {
		dec.parseObject(nil)
	}
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 fields")
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		Uvs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
		Material: defaultMaterial.Name,
	}
	if dec.matCurrent != nil {
		face.Material = dec.matCurrent.Name
	}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		var err error
		face.Vertices[pos], err = dec.parseIndex(vfields[0], len(dec.Vertices), "vertex")
		if err != nil {
			return err
		}
		face.Uvs[pos] = noIndex
		if len(vfields) > 1 && vfields[1] != "" {
			face.Uvs[pos], err = dec.parseIndex(vfields[1], len(dec.Uvs), "uv")
			if err != nil {
				return err
			}
		}
		face.Normals[pos] = noIndex
		if len(vfields) > 2 && vfields[2] != "" {
			face.Normals[pos], err = dec.parseIndex(vfields[2], len(dec.Normals), "normal")
			if err != nil {
				return err
			}
		}
	}
	dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	return nil
}

// usemtl <name>
func (dec *Decoder) parseUsemtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("usemtl with no fields")
	}
	if dec.objCurrent == nil {
		dec.parseObject(nil)
	}
	dec.matCurrent = dec.materialNamed(fields[0])
	return nil
}

// materialNamed returns the named material, adding it if new.
func (dec *Decoder) materialNamed(name string) *Material {
	mat := dec.Materials[name]
	if mat == nil {
		mat = &Material{Name: name, Diffuse: defaultMaterial.Diffuse, Specular: defaultMaterial.Specular, Opacity: 1}
		dec.Materials[name] = mat
	}
	return mat
}

////////  mtl

// parseMtlLine parses a material file line, dispatching to specific parsers.
func (dec *Decoder) parseMtlLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	ltype := fields[0]
	if ltype == "newmtl" {
		if len(fields) < 2 {
			return dec.formatError("newmtl with no fields")
		}
		dec.matCurrent = dec.materialNamed(fields[1])
		return nil
	}
	if dec.matCurrent == nil {
		return dec.formatError("'" + ltype + "' before newmtl")
	}
	switch ltype {
	case "Kd":
		return dec.parseColor(fields[1:], &dec.matCurrent.Diffuse, ltype)
	case "Ks":
		return dec.parseColor(fields[1:], &dec.matCurrent.Specular, ltype)
	case "Ns":
		return dec.parseFloat(fields[1:], &dec.matCurrent.Shininess, ltype)
	case "d":
		return dec.parseFloat(fields[1:], &dec.matCurrent.Opacity, ltype)
	case "map_Kd":
		return dec.parseMap(fields[1:], &dec.matCurrent.MapKd, ltype)
	case "map_Ks":
		return dec.parseMap(fields[1:], &dec.matCurrent.MapKs, ltype)
	default:
		dec.appendWarn(mtlType, "field not supported: "+ltype)
	}
	return nil
}

// Kd r g b
func (dec *Decoder) parseColor(fields []string, dst *mgl32.Vec3, ltype string) error {
	if len(fields) < 3 {
		return dec.formatError("'" + ltype + "' with less than 3 fields")
	}
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError("'" + ltype + "' parse float error")
		}
		dst[i] = float32(val)
	}
	return nil
}

// Ns <exponent>
func (dec *Decoder) parseFloat(fields []string, dst *float32, ltype string) error {
	if len(fields) < 1 {
		return dec.formatError("'" + ltype + "' with no fields")
	}
	val, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return dec.formatError("'" + ltype + "' parse float error")
	}
	*dst = float32(val)
	return nil
}

// map_Kd [-options args] <filename>
// Options are skipped; the file name is the last field.
func (dec *Decoder) parseMap(fields []string, dst *string, ltype string) error {
	if len(fields) < 1 {
		return dec.formatError("'" + ltype + "' with no fields")
	}
	*dst = fields[len(fields)-1]
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("obj.Decoder: %s in line:%d", msg, dec.line)
}

func (dec *Decoder) appendWarn(ftype string, msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("%s(%d): %s", ftype, dec.line, msg))
}
