package viewport

import "math"

// Dimension names which side of the box the user changed, so lock-aspect mode
// knows which one to recompute.
type Dimension int

const (
	DriverWidth Dimension = iota
	DriverHeight
)

// Box is the effective display box for the remote desktop surface. When Fill
// is set the surface stretches to its container and the pixel values are
// advisory only.
type Box struct {
	Width  int
	Height int
	Fill   bool
}

// Geometry governs the pixel box of the embedded remote desktop surface.
//
// Invariants: stored width and height are always positive and the aspect
// ratio always equals the ratio they last agreed on. Fit mode changes only
// how the box is laid out; the stored numbers survive untouched so turning
// fit off restores the exact previous pixel box.
type Geometry struct {
	width      int
	height     int
	aspect     float64
	lockAspect bool
	fit        bool
}

// DefaultWidth and DefaultHeight match the remote desktop's native size
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// NewGeometry creates a geometry with the given initial box. Non-positive
// dimensions fall back to the defaults.
func NewGeometry(width, height int) *Geometry {
	if width <= 0 || height <= 0 {
		width = DefaultWidth
		height = DefaultHeight
	}
	return &Geometry{
		width:  width,
		height: height,
		aspect: float64(width) / float64(height),
	}
}

// SetSize applies a user sizing intent. Non-positive dimensions are rejected
// with no state change. In fit mode the stored values are left alone (the box
// already fills its container). With lock-aspect on, the dimension the user
// did not drive is recomputed from the stored aspect ratio; with it off, the
// aspect ratio is recomputed from the new pair.
func (g *Geometry) SetSize(width, height int, driver Dimension) {
	if width <= 0 || height <= 0 {
		return
	}
	if g.fit {
		return
	}
	if g.lockAspect {
		if driver == DriverHeight {
			width = int(math.Round(float64(height) * g.aspect))
		} else {
			height = int(math.Round(float64(width) / g.aspect))
		}
	} else {
		g.aspect = float64(width) / float64(height)
	}
	g.width = width
	g.height = height
}

// ApplyPreset sets an exact box, treating width as the driven dimension
func (g *Geometry) ApplyPreset(width, height int) {
	g.SetSize(width, height, DriverWidth)
}

// SetFitMode toggles fill-the-container layout and reconciles the box from
// the stored size
func (g *Geometry) SetFitMode(enabled bool) {
	g.fit = enabled
	g.SetSize(g.width, g.height, DriverWidth)
}

// SetLockAspect toggles the aspect lock. It does not resize; the lock takes
// effect on the next SetSize.
func (g *Geometry) SetLockAspect(enabled bool) {
	g.lockAspect = enabled
}

// Box returns the effective display box
func (g *Geometry) Box() Box {
	return Box{Width: g.width, Height: g.height, Fill: g.fit}
}

// Width returns the stored pixel width
func (g *Geometry) Width() int { return g.width }

// Height returns the stored pixel height
func (g *Geometry) Height() int { return g.height }

// Aspect returns the stored width/height ratio
func (g *Geometry) Aspect() float64 { return g.aspect }

// LockAspect reports whether the aspect lock is on
func (g *Geometry) LockAspect() bool { return g.lockAspect }

// FitMode reports whether fill-the-container layout is on
func (g *Geometry) FitMode() bool { return g.fit }
