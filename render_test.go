package haze

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// buildDefault builds the default scene into a 640x320 renderer without
// touching the GPU.
func buildDefault(t *testing.T) (*Renderer, *Setup) {
	t.Helper()
	setup := DefaultConfig().Build()
	r := NewRenderer(640, 320)
	r.build(setup.Scene, setup.Camera)
	return r, setup
}

// --- Command emission ---

func TestBuildDefaultSceneCounts(t *testing.T) {
	r, _ := buildDefault(t)
	st := r.Stats()
	if st.Triangles != 36 {
		t.Errorf("Triangles = %d, want 36", st.Triangles)
	}
	if st.Clipped != 0 {
		t.Errorf("Clipped = %d, want 0", st.Clipped)
	}
	// Unrotated: the middle cube shows its front, the outer cubes their
	// front and inner side.
	if st.Submitted != 10 {
		t.Errorf("Submitted = %d, want 10", st.Submitted)
	}
	if st.Culled != 26 {
		t.Errorf("Culled = %d, want 26", st.Culled)
	}
}

func TestBuildSkipsInvisibleMesh(t *testing.T) {
	setup := DefaultConfig().Build()
	for _, m := range setup.Cubes {
		m.Visible = false
	}
	r := NewRenderer(640, 320)
	r.build(setup.Scene, setup.Camera)
	if len(r.commands) != 0 || r.Stats().Triangles != 0 {
		t.Errorf("commands = %d, want 0 for hidden meshes", len(r.commands))
	}
}

func TestBuildClipsBeyondFarPlane(t *testing.T) {
	setup := DefaultConfig().Build()
	setup.Camera.Far = 1
	setup.Camera.UpdateProjectionMatrix()
	r := NewRenderer(640, 320)
	r.build(setup.Scene, setup.Camera)
	st := r.Stats()
	if st.Clipped != 36 || st.Submitted != 0 {
		t.Errorf("clipped/submitted = %d/%d, want 36/0", st.Clipped, st.Submitted)
	}
}

func TestBuildResetsBetweenFrames(t *testing.T) {
	r, setup := buildDefault(t)
	first := len(r.commands)
	r.build(setup.Scene, setup.Camera)
	if len(r.commands) != first {
		t.Errorf("commands = %d after rebuild, want %d", len(r.commands), first)
	}
	if r.Stats().Triangles != 36 {
		t.Errorf("stats accumulated across frames: %+v", r.Stats())
	}
}

// --- Fog ---

func TestFogReplacesVertexColorsBeyondFar(t *testing.T) {
	setup := DefaultConfig().Build()
	setup.Fog.SetColor("#ff0000")
	setup.Fog.SetFar(0.5)
	setup.Fog.SetNear(0.5)

	r := NewRenderer(640, 320)
	r.build(setup.Scene, setup.Camera)
	if len(r.commands) == 0 {
		t.Fatal("no commands")
	}
	for i, cmd := range r.commands {
		for _, v := range cmd.verts {
			if v.ColorR != 1 || v.ColorG != 0 || v.ColorB != 0 || v.ColorA != 1 {
				t.Fatalf("command %d vertex color = (%v,%v,%v,%v), want fog red",
					i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
			}
		}
	}
}

func TestFogDisabledPerMaterial(t *testing.T) {
	setup := DefaultConfig().Build()
	setup.Fog.SetColor("#ff0000")
	setup.Fog.SetFar(0.5)
	for _, m := range setup.Cubes {
		m.Material.Fog = false
	}

	r := NewRenderer(640, 320)
	r.build(setup.Scene, setup.Camera)
	for _, cmd := range r.commands {
		v := cmd.verts[0]
		if v.ColorR == 1 && v.ColorG == 0 && v.ColorB == 0 {
			t.Fatal("fog applied to a material with Fog = false")
		}
	}
}

func TestFogNearerSurfaceIsLessFogged(t *testing.T) {
	scene := NewScene()
	scene.Fog = NewFog(ColorWhite, 1, 3)
	scene.Ambient = Color{1, 1, 1, 1}
	mat := NewPhongMaterial(ColorBlack)
	mat.Emissive = ColorBlack

	near := NewMesh("near", NewBoxGeometry(0.2, 0.2, 0.2), mat)
	near.SetPosition(-0.3, 0, -1.5)
	far := NewMesh("far", NewBoxGeometry(0.2, 0.2, 0.2), mat)
	far.SetPosition(0.3, 0, -2.5)
	scene.Add(near)
	scene.Add(far)

	cam := NewPerspectiveCamera(75, 1, 0.1, 10)
	r := NewRenderer(100, 100)
	r.build(scene, cam)
	r.mergeSort()

	// Sorted far to near: the first command is the far cube and is brighter.
	first := r.commands[0].verts[0].ColorR
	last := r.commands[len(r.commands)-1].verts[0].ColorR
	if first <= last {
		t.Errorf("far surface %v should be more fogged than near surface %v", first, last)
	}
}

// --- Clipping ---

func TestClipToDepthRange(t *testing.T) {
	var poly, scratch clipPolygon
	poly.add(clipVertex{pos: mgl64.Vec3{0, 0, -0.5}})
	poly.add(clipVertex{pos: mgl64.Vec3{1, 0, -10}})
	poly.add(clipVertex{pos: mgl64.Vec3{0, 1, -10}})

	clipToDepthRange(&poly, &scratch, 1, 5)
	if poly.n < 3 || poly.n > maxClipVerts {
		t.Fatalf("clipped vertex count = %d", poly.n)
	}
	for i := 0; i < poly.n; i++ {
		d := -poly.v[i].pos[2]
		if d < 1-epsilon || d > 5+epsilon {
			t.Errorf("vertex %d depth %v outside [1, 5]", i, d)
		}
	}
}

func TestClipToDepthRangeRejectsOutside(t *testing.T) {
	var poly, scratch clipPolygon
	poly.add(clipVertex{pos: mgl64.Vec3{0, 0, -0.1}})
	poly.add(clipVertex{pos: mgl64.Vec3{1, 0, -0.2}})
	poly.add(clipVertex{pos: mgl64.Vec3{0, 1, 0.5}})

	clipToDepthRange(&poly, &scratch, 1, 5)
	if poly.n != 0 {
		t.Errorf("vertex count = %d, want 0 for triangle before near", poly.n)
	}
}

func TestClipInterpolatesColor(t *testing.T) {
	a := clipVertex{pos: mgl64.Vec3{0, 0, 0}, color: ColorBlack}
	b := clipVertex{pos: mgl64.Vec3{0, 0, -2}, color: ColorWhite}
	mid := intersect(a, b, -1, 1)
	if !approxEqual(mid.pos[2], -1, epsilon) || !approxEqual(mid.color.R, 0.5, epsilon) {
		t.Errorf("intersect = %+v, want z=-1 and half gray", mid)
	}
}

func TestPolygonAreaOrientation(t *testing.T) {
	pts := func(xy ...float32) []ebiten.Vertex {
		v := make([]ebiten.Vertex, len(xy)/2)
		for i := range v {
			v[i].DstX, v[i].DstY = xy[2*i], xy[2*i+1]
		}
		return v
	}
	tests := []struct {
		name  string
		verts []ebiten.Vertex
		front bool
	}{
		{"triangle", pts(0, 10, 10, 10, 10, 0), true},
		{"leading repeat", pts(0, 10, 0, 10, 10, 10, 10, 0), true},
		{"middle repeat", pts(0, 10, 10, 10, 10, 10, 10, 0, 0, 0), true},
		{"clockwise", pts(0, 0, 10, 0, 10, 10), false},
		{"clockwise repeat", pts(10, 0, 10, 10, 0, 10, 0, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := polygonArea2(tt.verts)
			if tt.front && a >= 0 {
				t.Errorf("area = %v, want negative", a)
			}
			if !tt.front && a <= 0 {
				t.Errorf("area = %v, want positive", a)
			}
		})
	}
}

// --- Merge sort ---

func TestMergeSortFarToNear(t *testing.T) {
	r := NewRenderer(1, 1)
	depths := []float64{1, 5, 3, 5, 2, 4, 1, 3}
	for i, d := range depths {
		r.commands = append(r.commands, triCommand{depth: d, order: i})
	}
	r.mergeSort()
	for i := 1; i < len(r.commands); i++ {
		a, b := r.commands[i-1], r.commands[i]
		if a.depth < b.depth {
			t.Fatalf("index %d: depth %v before %v", i, a.depth, b.depth)
		}
		if a.depth == b.depth && a.order > b.order {
			t.Fatalf("index %d: unstable order %d before %d", i, a.order, b.order)
		}
	}
}

func TestMergeSortOddSizes(t *testing.T) {
	for n := 0; n < 20; n++ {
		r := NewRenderer(1, 1)
		for i := 0; i < n; i++ {
			r.commands = append(r.commands, triCommand{depth: float64((i * 7) % 5), order: i})
		}
		r.mergeSort()
		if len(r.commands) != n {
			t.Fatalf("n=%d: length changed to %d", n, len(r.commands))
		}
		for i := 1; i < n; i++ {
			if !commandLessOrEqual(&r.commands[i-1], &r.commands[i]) {
				t.Fatalf("n=%d: out of order at %d", n, i)
			}
		}
	}
}

func TestVertexPremultiplies(t *testing.T) {
	v := vertex(3, 4, Color{1, 0.5, 0, 0.5})
	if v.DstX != 3 || v.DstY != 4 {
		t.Errorf("dst = (%v, %v)", v.DstX, v.DstY)
	}
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorA != 0.5 {
		t.Errorf("color = (%v, %v, %v, %v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	if v.SrcX != 0.5 || v.SrcY != 0.5 {
		t.Error("vertex should sample the white pixel center")
	}
}
