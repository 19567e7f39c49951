// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

package gpu

import (
	"fmt"
	"math"
	"sync"

	"github.com/gazed/raytracer/image"
	"github.com/gazed/raytracer/rtmath"
	"github.com/gazed/raytracer/scene"
)

// workgroupSize matches shader.wgsl's @workgroup_size(8, 8, 1).
const workgroupSize = 8

// sceneParams mirrors the WGSL SceneParams uniform: every vec3 field
// is padded out to a vec4 slot so the Go-side layout matches what a
// real std140-style uniform buffer would require.
type sceneParams struct {
	width, height             uint32
	sphereCount, lightCount   uint32
	maxDepth                  uint32
	_pad0, _pad1, _pad2       uint32
	ambient                   [4]float32
	camPos, camRight, camVplane, camDir [4]float32
	fov                       float32
	_pad3, _pad4, _pad5       float32
}

// gpuSphere mirrors the WGSL GPUSphere storage element.
type gpuSphere struct {
	center   [4]float32 // xyz = center, w = radius
	diffuse  [4]float32 // rgb = diffuse, w unused
	specular [4]float32 // rgb = specular, w = shininess
}

// gpuLight mirrors the WGSL GPULight storage element.
type gpuLight struct {
	positionOrDir [4]float32 // xyz, w = kind (0 point, 1 directional)
	color         [4]float32
}

// Render dispatches the compute kernel over sc and returns the
// resulting Image. Only sphere primitives are shaded; this is the
// documented GPU/CPU parity gap (spec §9 "GPU/CPU parity gap"), not a
// bug — the GPU kernel historically supports only spheres via linear
// scan. Render returns ErrNoAdapter/ErrDeviceRequestFailed/ErrMapFailed
// if any emulated device step fails, so the caller can fall back to
// the CPU backend per spec §7.
func Render(sc *scene.Scene) (*image.Image, error) {
	dev, err := RequestAdapter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	queue := dev.Queue()

	params := buildSceneParams(sc)
	spheres := buildSphereBuffer(sc)
	lights := buildLightBuffer(sc)

	staging, err := dispatch(queue, params, spheres, lights)
	if err != nil {
		return nil, err
	}
	pixels, err := staging.MapAsync()
	if err != nil {
		return nil, err
	}

	img := image.New(sc.Width, sc.Height)
	for y := 0; y < sc.Height; y++ {
		for x := 0; x < sc.Width; x++ {
			img.Set(x, y, pixels[y*sc.Width+x])
		}
	}
	return img, nil
}

// buildSceneParams packs camera and scene-wide scalars the way a real
// backend would fill a uniform buffer once per frame.
func buildSceneParams(sc *scene.Scene) sceneParams {
	direction, right, vplane := sc.Camera.Basis()
	spheres := 0
	for _, p := range sc.Primitives {
		if p.Kind == scene.SphereKind {
			spheres++
		}
	}
	return sceneParams{
		width: uint32(sc.Width), height: uint32(sc.Height),
		sphereCount: uint32(spheres), lightCount: uint32(len(sc.Lights)),
		maxDepth: uint32(sc.MaxDepth),
		ambient:  vec4(sc.Ambient),
		camPos:   vec4(sc.Camera.Position),
		camRight: vec4(right), camVplane: vec4(vplane), camDir: vec4(direction),
		fov: sc.Camera.Fov,
	}
}

// buildSphereBuffer packs every sphere primitive into the storage
// buffer layout, with exactly one zero-value padding element when the
// scene has no spheres at all (dispatch safety: a zero-length storage
// buffer must never be bound).
func buildSphereBuffer(sc *scene.Scene) []gpuSphere {
	out := make([]gpuSphere, 0, len(sc.Primitives)+1)
	for _, p := range sc.Primitives {
		if p.Kind != scene.SphereKind {
			continue
		}
		out = append(out, gpuSphere{
			center:   [4]float32{p.Center.X, p.Center.Y, p.Center.Z, p.Radius},
			diffuse:  vec4(p.Material.DiffuseColor),
			specular: [4]float32{p.Material.SpecularColor.X, p.Material.SpecularColor.Y, p.Material.SpecularColor.Z, p.Material.Shininess},
		})
	}
	if len(out) == 0 {
		out = append(out, gpuSphere{})
	}
	return out
}

// buildLightBuffer packs every light into the storage buffer layout,
// with the same empty-buffer padding rule as buildSphereBuffer.
func buildLightBuffer(sc *scene.Scene) []gpuLight {
	out := make([]gpuLight, 0, len(sc.Lights)+1)
	for _, l := range sc.Lights {
		kind := float32(0)
		vec := l.Position
		if l.Kind == scene.DirectionalLight {
			kind = 1
			vec = l.Direction
		}
		out = append(out, gpuLight{
			positionOrDir: [4]float32{vec.X, vec.Y, vec.Z, kind},
			color:         vec4(l.Color),
		})
	}
	if len(out) == 0 {
		out = append(out, gpuLight{})
	}
	return out
}

func vec4(v rtmath.Vec3) [4]float32 { return [4]float32{v.X, v.Y, v.Z, 0} }

// dispatch runs computeInvocation once per pixel, grouped into 8x8
// workgroups scheduled concurrently — the GPU analogue of the CPU
// backend's row-worker pool, except the unit of concurrency is a tile
// of invocations rather than a row.
func dispatch(queue *Queue, params sceneParams, spheres []gpuSphere, lights []gpuLight) (*Buffer, error) {
	_ = queue // kept for API symmetry with a real wgpu submit(queue, ...) call.

	width, height := int(params.width), int(params.height)
	pixels := make([]uint32, width*height)

	wgCountX := ceilDiv(width, workgroupSize)
	wgCountY := ceilDiv(height, workgroupSize)

	var wg sync.WaitGroup
	wg.Add(wgCountX * wgCountY)
	for wgy := 0; wgy < wgCountY; wgy++ {
		for wgx := 0; wgx < wgCountX; wgx++ {
			go func(wgx, wgy int) {
				defer wg.Done()
				for ly := 0; ly < workgroupSize; ly++ {
					y := wgy*workgroupSize + ly
					if y >= height {
						continue
					}
					for lx := 0; lx < workgroupSize; lx++ {
						x := wgx*workgroupSize + lx
						if x >= width {
							continue
						}
						pixels[y*width+x] = computeInvocation(params, spheres, lights, x, y)
					}
				}
			}(wgx, wgy)
		}
	}
	wg.Wait()
	return &Buffer{data: pixels}, nil
}

func ceilDiv(n, d int) int { return (n + d - 1) / d }

// computeInvocation shades one pixel: primary ray generation,
// closest-hit sphere scan, shadow testing, blinn-phong, and recursive
// reflection up to params.maxDepth, the steps shader.wgsl's main()
// lists in its comments. The WGSL main() body itself only bounds-checks
// and writes a zero pixel; the shading is implemented only here.
func computeInvocation(params sceneParams, spheres []gpuSphere, lights []gpuLight, x, y int) uint32 {
	fovRad := float32(params.fov) * math.Pi / 180
	ph := float32(math.Tan(float64(fovRad / 2)))
	pw := ph * float32(params.width) / float32(params.height)
	halfW, halfH := float32(params.width)/2, float32(params.height)/2
	a := pw * ((float32(x) + 0.5) - halfW) / halfW
	b := ph * (halfH - (float32(y) + 0.5)) / halfH

	right := vecOf(params.camRight)
	vplane := vecOf(params.camVplane)
	dir := vecOf(params.camDir)
	rayDir := right.Scale(a).Add(vplane.Scale(b)).Add(dir).Unit()
	origin := vecOf(params.camPos)

	color := traceGPU(params, spheres, lights, origin, rayDir, 1)
	return packGPU(color)
}

// traceGPU mirrors shade.Shader.Trace, restricted to sphere primitives.
func traceGPU(params sceneParams, spheres []gpuSphere, lights []gpuLight, origin, dir rtmath.Vec3, depth uint32) rtmath.Vec3 {
	if depth > params.maxDepth {
		return rtmath.Vec3{}
	}
	idx, dist, ok := closestSphereGPU(params, spheres, origin, dir)
	if !ok {
		return rtmath.Vec3{}
	}
	sp := spheres[idx]
	center := rtmath.NewVec3(sp.center[0], sp.center[1], sp.center[2])
	point := origin.Add(dir.Scale(dist))
	normal := point.Sub(center).Scale(1 / sp.center[3])
	diffuseColor := rtmath.NewVec3(sp.diffuse[0], sp.diffuse[1], sp.diffuse[2])
	specularColor := rtmath.NewVec3(sp.specular[0], sp.specular[1], sp.specular[2])
	shininess := sp.specular[3]

	var direct rtmath.Vec3
	for li := uint32(0); li < params.lightCount; li++ {
		l := lights[li]
		var toLight rtmath.Vec3
		lightDist := float32(math.MaxFloat32)
		if l.positionOrDir[3] == 0 {
			pos := rtmath.NewVec3(l.positionOrDir[0], l.positionOrDir[1], l.positionOrDir[2])
			toLightRaw := pos.Sub(point)
			lightDist = toLightRaw.Len()
			toLight = toLightRaw.Unit()
		} else {
			toLight = rtmath.NewVec3(l.positionOrDir[0], l.positionOrDir[1], l.positionOrDir[2])
		}
		shadowOrigin := point.Add(normal.Scale(1e-6))
		if _, blockDist, blocked := closestSphereGPU(params, spheres, shadowOrigin, toLight); blocked && blockDist < lightDist {
			continue
		}
		nDotL := normal.Dot(toLight)
		if nDotL < 0 {
			nDotL = 0
		}
		view := dir.Neg()
		half := toLight.Add(view).Unit()
		nDotH := normal.Dot(half)
		if nDotH < 0 {
			nDotH = 0
		}
		var spec float32
		switch shininess {
		case 1:
			spec = nDotH
		case 0:
			if nDotL > 0 {
				spec = nDotH
			}
		default:
			if nDotL > 0 {
				spec = float32(math.Pow(float64(nDotH), float64(shininess)))
			}
		}
		lightColor := rtmath.NewVec3(l.color[0], l.color[1], l.color[2])
		direct = direct.Add(diffuseColor.Scale(nDotL).Add(specularColor.Scale(spec)).Mul(lightColor))
	}

	ambient := rtmath.NewVec3(params.ambient[0], params.ambient[1], params.ambient[2])
	color := direct.Add(ambient)
	if (specularColor.X > 0 || specularColor.Y > 0 || specularColor.Z > 0) && depth+1 < params.maxDepth {
		reflectDir := dir.Reflect(normal)
		reflectOrigin := point.Add(normal.Scale(1e-6))
		bounced := traceGPU(params, spheres, lights, reflectOrigin, reflectDir, depth+1)
		color = color.Add(specularColor.Mul(bounced))
	}
	return color
}

// closestSphereGPU linearly scans every sphere, the GPU kernel's
// stand-in for a BVH traversal: acceptable per spec §4.6 because the
// sphere-only scene count is small enough for a compute invocation to
// scan in full.
func closestSphereGPU(params sceneParams, spheres []gpuSphere, origin, dir rtmath.Vec3) (index int, distance float32, ok bool) {
	best := float32(math.MaxFloat32)
	found := -1
	for i := uint32(0); i < params.sphereCount; i++ {
		sp := spheres[i]
		center := rtmath.NewVec3(sp.center[0], sp.center[1], sp.center[2])
		radius := sp.center[3]
		oc := origin.Sub(center)
		halfB := oc.Dot(dir)
		c := oc.Dot(oc) - radius*radius
		disc := halfB*halfB - c
		if disc < 0 {
			continue
		}
		t := -halfB - float32(math.Sqrt(float64(disc)))
		if t <= 0 {
			continue
		}
		if t < best {
			best = t
			found = int(i)
		}
	}
	if found < 0 {
		return 0, 0, false
	}
	return found, best, true
}

func vecOf(v [4]float32) rtmath.Vec3 { return rtmath.NewVec3(v[0], v[1], v[2]) }

// packGPU mirrors shade.Pack: clamp each channel to [0,1], scale to
// [0,255], round to nearest, pack into 0x00RRGGBB.
func packGPU(c rtmath.Vec3) uint32 {
	r := packChannelGPU(c.X)
	g := packChannelGPU(c.Y)
	b := packChannelGPU(c.Z)
	return r<<16 | g<<8 | b
}

func packChannelGPU(f float32) uint32 {
	clamped := rtmath.Clamp01(f)
	return uint32(math.Round(float64(clamped) * 255))
}
