// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scenefile parses the line-oriented scene description text
// format into a scene.Scene. It follows load/obj.go's line-scanning
// style: a bufio.Scanner over the reader, strings.Fields per line, and
// a per-directive switch, rather than a generated or regex-based
// parser.
package scenefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gazed/raytracer/rtmath"
	"github.com/gazed/raytracer/scene"
)

// ParseError reports a scene-file directive that could not be parsed,
// with the 1-based line number it came from.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scenefile: line %d: %s", e.Line, e.Message)
}

func parseErr(line int, format string, args ...any) error {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// material tracks the "current" diffuse/specular/shininess state,
// which scene-file directives mutate and sphere/tri/plane directives
// capture at emission time.
type material struct {
	diffuse   rtmath.Vec3
	specular  rtmath.Vec3
	shininess float32
}

// Parse reads a scene description from r and builds a scene.Scene. The
// caller is expected to open and close r. Parse returns a *ParseError
// for any malformed or out-of-range directive; the returned Scene is
// only valid when err is nil.
func Parse(r io.Reader) (scene.Scene, error) {
	sc := scene.Scene{MaxDepth: 1}
	mat := material{}
	var cam *scene.Camera
	var verts []rtmath.Vec3
	maxVerts := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		directive, args := fields[0], fields[1:]

		switch directive {
		case "size":
			w, h, err := parseInts2(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			if w <= 0 || h <= 0 {
				return scene.Scene{}, parseErr(lineNo, "size %d %d must be positive", w, h)
			}
			sc.Width, sc.Height = w, h

		case "output":
			if len(args) != 1 {
				return scene.Scene{}, parseErr(lineNo, "output expects 1 argument, got %d", len(args))
			}
			sc.OutputPath = args[0]

		case "camera":
			f, err := parseFloats(lineNo, args, 10)
			if err != nil {
				return scene.Scene{}, err
			}
			position := rtmath.NewVec3(f[0], f[1], f[2])
			lookAt := rtmath.NewVec3(f[3], f[4], f[5])
			up := rtmath.NewVec3(f[6], f[7], f[8])
			built, err := scene.NewCamera(position, lookAt, up, f[9])
			if err != nil {
				return scene.Scene{}, parseErr(lineNo, "%v", err)
			}
			cam = &built

		case "ambient":
			c, err := parseColor01(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			sc.Ambient = c

		case "maxdepth":
			n, err := parseInts1(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			if n < 1 {
				return scene.Scene{}, parseErr(lineNo, "maxdepth %d must be >= 1", n)
			}
			sc.MaxDepth = n

		case "maxverts":
			n, err := parseInts1(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			if n < 0 {
				return scene.Scene{}, parseErr(lineNo, "maxverts %d must be >= 0", n)
			}
			maxVerts = n
			sc.MaxVerts = n
			verts = make([]rtmath.Vec3, 0, n)

		case "vertex":
			f, err := parseFloats(lineNo, args, 3)
			if err != nil {
				return scene.Scene{}, err
			}
			if len(verts) >= maxVerts {
				return scene.Scene{}, parseErr(lineNo, "vertex pool exceeds maxverts %d", maxVerts)
			}
			verts = append(verts, rtmath.NewVec3(f[0], f[1], f[2]))

		case "diffuse":
			c, err := parseColor01(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			if c.X+sc.Ambient.X > 1+rtmath.Epsilon || c.Y+sc.Ambient.Y > 1+rtmath.Epsilon || c.Z+sc.Ambient.Z > 1+rtmath.Epsilon {
				return scene.Scene{}, parseErr(lineNo, "diffuse %v + ambient %v exceeds 1 in some channel", c, sc.Ambient)
			}
			mat.diffuse = c

		case "specular":
			f, err := parseFloats(lineNo, args, 3)
			if err != nil {
				return scene.Scene{}, err
			}
			if f[0] < 0 || f[1] < 0 || f[2] < 0 {
				return scene.Scene{}, parseErr(lineNo, "specular %v has a negative channel", f)
			}
			mat.specular = rtmath.NewVec3(f[0], f[1], f[2])

		case "shininess":
			f, err := parseFloats(lineNo, args, 1)
			if err != nil {
				return scene.Scene{}, err
			}
			if f[0] < 0 {
				return scene.Scene{}, parseErr(lineNo, "shininess %v must be >= 0", f[0])
			}
			mat.shininess = f[0]

		case "sphere":
			f, err := parseFloats(lineNo, args, 4)
			if err != nil {
				return scene.Scene{}, err
			}
			sph, sperr := scene.NewSphere(rtmath.NewVec3(f[0], f[1], f[2]), f[3], mat.toMaterial())
			if sperr != nil {
				return scene.Scene{}, parseErr(lineNo, "%v", sperr)
			}
			sc.Primitives = append(sc.Primitives, sph)

		case "tri":
			idx, err := parseInts3(lineNo, args)
			if err != nil {
				return scene.Scene{}, err
			}
			v0, v1, v2, verr := vertsAt(verts, idx[0], idx[1], idx[2])
			if verr != nil {
				return scene.Scene{}, parseErr(lineNo, "%v", verr)
			}
			sc.Primitives = append(sc.Primitives, scene.NewTriangle(v0, v1, v2, mat.toMaterial()))

		case "plane":
			f, err := parseFloats(lineNo, args, 6)
			if err != nil {
				return scene.Scene{}, err
			}
			point := rtmath.NewVec3(f[0], f[1], f[2])
			normal := rtmath.NewVec3(f[3], f[4], f[5])
			sc.Primitives = append(sc.Primitives, scene.NewPlane(point, normal, mat.toMaterial()))

		case "point":
			f, err := parseFloats(lineNo, args, 6)
			if err != nil {
				return scene.Scene{}, err
			}
			position := rtmath.NewVec3(f[0], f[1], f[2])
			color, cerr := color01(f[3], f[4], f[5])
			if cerr != nil {
				return scene.Scene{}, parseErr(lineNo, "%v", cerr)
			}
			sc.Lights = append(sc.Lights, scene.NewPointLight(position, color))

		case "directional":
			f, err := parseFloats(lineNo, args, 6)
			if err != nil {
				return scene.Scene{}, err
			}
			dir := rtmath.NewVec3(f[0], f[1], f[2])
			color, cerr := color01(f[3], f[4], f[5])
			if cerr != nil {
				return scene.Scene{}, parseErr(lineNo, "%v", cerr)
			}
			sc.Lights = append(sc.Lights, scene.NewDirectionalLight(dir, color))

		default:
			return scene.Scene{}, parseErr(lineNo, "unknown directive %q", directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return scene.Scene{}, fmt.Errorf("scenefile: read failed: %w", err)
	}
	if cam == nil {
		return scene.Scene{}, fmt.Errorf("scenefile: missing camera directive")
	}
	sc.Camera = *cam
	return sc, nil
}

func (m material) toMaterial() scene.Material {
	return scene.Material{DiffuseColor: m.diffuse, SpecularColor: m.specular, Shininess: m.shininess}
}

func vertsAt(verts []rtmath.Vec3, i, j, k int) (v0, v1, v2 rtmath.Vec3, err error) {
	for _, idx := range []int{i, j, k} {
		if idx < 0 || idx >= len(verts) {
			return v0, v1, v2, fmt.Errorf("vertex index %d out of range [0,%d)", idx, len(verts))
		}
	}
	return verts[i], verts[j], verts[k], nil
}

func color01(r, g, b float32) (rtmath.Vec3, error) {
	c := rtmath.NewVec3(r, g, b)
	if r < 0 || r > 1 || g < 0 || g > 1 || b < 0 || b > 1 {
		return c, fmt.Errorf("color %v channel out of range [0,1]", c)
	}
	return c, nil
}

func parseColor01(lineNo int, args []string) (rtmath.Vec3, error) {
	f, err := parseFloats(lineNo, args, 3)
	if err != nil {
		return rtmath.Vec3{}, err
	}
	c, cerr := color01(f[0], f[1], f[2])
	if cerr != nil {
		return rtmath.Vec3{}, parseErr(lineNo, "%v", cerr)
	}
	return c, nil
}

func parseFloats(lineNo int, args []string, want int) ([]float32, error) {
	if len(args) != want {
		return nil, parseErr(lineNo, "expects %d arguments, got %d", want, len(args))
	}
	out := make([]float32, want)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, parseErr(lineNo, "malformed number %q", a)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func parseInts1(lineNo int, args []string) (int, error) {
	if len(args) != 1 {
		return 0, parseErr(lineNo, "expects 1 argument, got %d", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, parseErr(lineNo, "malformed integer %q", args[0])
	}
	return n, nil
}

func parseInts2(lineNo int, args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, parseErr(lineNo, "expects 2 arguments, got %d", len(args))
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, parseErr(lineNo, "malformed integer %q", args[0])
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, parseErr(lineNo, "malformed integer %q", args[1])
	}
	return a, b, nil
}

func parseInts3(lineNo int, args []string) ([3]int, error) {
	if len(args) != 3 {
		return [3]int{}, parseErr(lineNo, "expects 3 arguments, got %d", len(args))
	}
	var out [3]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return [3]int{}, parseErr(lineNo, "malformed integer %q", a)
		}
		out[i] = n
	}
	return out, nil
}
