package haze

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxClipVerts bounds a triangle clipped against two parallel planes.
const maxClipVerts = 5

// triCommand is a single screen-space triangle emitted by the vertex pipeline.
type triCommand struct {
	verts [3]ebiten.Vertex
	// depth is the view-space distance of the source triangle's centroid.
	depth float64
	// order is the emission index, used to keep the sort stable.
	order int
}

// clipVertex is a view-space vertex carrying its lit (pre-fog) color.
type clipVertex struct {
	pos   mgl64.Vec3
	color Color
}

// clipPolygon is a fixed-capacity polygon used during near/far clipping.
type clipPolygon struct {
	v [maxClipVerts]clipVertex
	n int
}

func (p *clipPolygon) add(v clipVertex) {
	if p.n < maxClipVerts {
		p.v[p.n] = v
		p.n++
	}
}

// clipAgainst clips src by the plane where dist(v) >= 0 using
// Sutherland-Hodgman and writes the result into dst.
func clipAgainst(src, dst *clipPolygon, dist func(mgl64.Vec3) float64) {
	dst.n = 0
	if src.n == 0 {
		return
	}
	prev := src.v[src.n-1]
	prevD := dist(prev.pos)
	for i := 0; i < src.n; i++ {
		cur := src.v[i]
		curD := dist(cur.pos)
		if curD >= 0 {
			if prevD < 0 {
				dst.add(intersect(prev, cur, prevD, curD))
			}
			dst.add(cur)
		} else if prevD >= 0 {
			dst.add(intersect(prev, cur, prevD, curD))
		}
		prev, prevD = cur, curD
	}
}

// intersect returns the point between a and b where the signed plane distance
// crosses zero, interpolating position and color.
func intersect(a, b clipVertex, da, db float64) clipVertex {
	t := da / (da - db)
	return clipVertex{
		pos:   a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		color: a.color.Lerp(b.color, t),
	}
}

// clipToDepthRange clips a view-space triangle to near <= -z <= far. The
// camera looks down -Z, so view depth is -z.
func clipToDepthRange(tri *clipPolygon, scratch *clipPolygon, near, far float64) {
	clipAgainst(tri, scratch, func(p mgl64.Vec3) float64 { return -p[2] - near })
	clipAgainst(scratch, tri, func(p mgl64.Vec3) float64 { return far + p[2] })
}

// polygonArea2 returns twice the signed area of a screen-space polygon
// (shoelace). Screen Y grows downward, so polygons wound counter-clockwise
// in view space yield a negative value. Repeated points left by clipping
// contribute nothing.
func polygonArea2(verts []ebiten.Vertex) float64 {
	var sum float64
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		sum += float64(a.DstX)*float64(b.DstY) - float64(b.DstX)*float64(a.DstY)
	}
	return sum
}

// emitMesh runs the vertex pipeline for one mesh and appends its surviving
// triangles to r.commands.
func (r *Renderer) emitMesh(s *Scene, cam *PerspectiveCamera, view mgl64.Mat4, m *Mesh) {
	g := m.Geometry
	mat := m.Material
	if g == nil || mat == nil || len(g.Positions) == 0 {
		return
	}

	modelView := view.Mul4(m.WorldMatrix())
	normalMat := modelView.Mat3().Inv().Transpose()

	m.ensureScratch(len(g.Positions))
	for i, p := range g.Positions {
		vp := modelView.Mul4x1(p.Vec4(1)).Vec3()
		n := normalMat.Mul3x1(g.Normals[i])
		if n.Len() > 0 {
			n = n.Normalize()
		}
		toEye := vp.Mul(-1)
		if toEye.Len() > 0 {
			toEye = toEye.Normalize()
		}
		m.viewPos[i] = vp
		m.viewColors[i] = mat.shade(n, toEye, s.Ambient, r.lights)
	}

	fog := s.Fog
	if !mat.Fog {
		fog = nil
	}
	w, h := float64(r.width), float64(r.height)

	var poly, scratch clipPolygon
	for t := 0; t+2 < len(g.Indices); t += 3 {
		r.stats.triangles++

		i0, i1, i2 := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		poly.n = 0
		poly.add(clipVertex{m.viewPos[i0], m.viewColors[i0]})
		poly.add(clipVertex{m.viewPos[i1], m.viewColors[i1]})
		poly.add(clipVertex{m.viewPos[i2], m.viewColors[i2]})
		depth := -(m.viewPos[i0][2] + m.viewPos[i1][2] + m.viewPos[i2][2]) / 3

		clipToDepthRange(&poly, &scratch, cam.Near, cam.Far)
		if poly.n < 3 {
			r.stats.clipped++
			continue
		}

		var verts [maxClipVerts]ebiten.Vertex
		for k := 0; k < poly.n; k++ {
			cv := poly.v[k]
			x, y, ok := cam.ProjectToScreen(cv.pos, w, h)
			if !ok {
				// Unreachable after near clipping with Near > 0.
				x, y = 0, 0
			}
			c := cv.color
			if fog != nil {
				c = fog.Apply(c, -cv.pos[2])
			}
			verts[k] = vertex(x, y, c)
		}

		area := polygonArea2(verts[:poly.n])
		if area >= 0 {
			r.stats.culled++
			continue
		}

		// Fan triangulation: vertex 0 is the hub.
		for k := 1; k+1 < poly.n; k++ {
			r.commands = append(r.commands, triCommand{
				verts: [3]ebiten.Vertex{verts[0], verts[k], verts[k+1]},
				depth: depth,
				order: len(r.commands),
			})
		}
	}
}

// vertex builds an untextured ebiten vertex with a premultiplied color.
func vertex(x, y float64, c Color) ebiten.Vertex {
	a := float32(c.A)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should be drawn before or at the same
// position as b: farther triangles first, emission order breaking ties.
func commandLessOrEqual(a, b *triCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// mergeSort sorts r.commands in-place using r.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (r *Renderer) mergeSort() {
	n := len(r.commands)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]triCommand, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.commands
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.commands, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []triCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
