package haze

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and triangle counts.
// Timings are only populated when debug mode is on.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int

	triangles int // source triangles considered
	clipped   int // removed entirely by near/far clipping
	culled    int // back faces
}

// FrameStats is the public view of the last frame's pipeline counters.
type FrameStats struct {
	Triangles int
	Clipped   int
	Culled    int
	Submitted int
}

// Stats returns counters from the most recent Render.
func (r *Renderer) Stats() FrameStats {
	return FrameStats{
		Triangles: r.stats.triangles,
		Clipped:   r.stats.clipped,
		Culled:    r.stats.culled,
		Submitted: len(r.commands),
	}
}

// debugLog prints timing and triangle stats to stderr.
func (r *Renderer) debugLog() {
	if !r.debug {
		return
	}
	st := r.stats
	total := st.traverseTime + st.sortTime + st.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[haze] transform: %v | sort: %v | submit: %v | total: %v\n",
		st.traverseTime, st.sortTime, st.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[haze] triangles: %d | clipped: %d | culled: %d | submitted: %d\n",
		st.triangles, st.clipped, st.culled, st.commandCount)
}

// debugCheckFog warns on stderr when fog parameters were written directly
// and break the near <= far ordering FogHelper maintains.
func debugCheckFog(f *Fog) {
	if f != nil && f.Near > f.Far {
		_, _ = fmt.Fprintf(os.Stderr, "[haze] warning: fog near %.3f exceeds far %.3f\n", f.Near, f.Far)
	}
}
