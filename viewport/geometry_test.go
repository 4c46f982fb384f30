package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeometryDefaults(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"valid", 1280, 800, 1280, 800},
		{"zero width", 0, 800, DefaultWidth, DefaultHeight},
		{"zero height", 1280, 0, DefaultWidth, DefaultHeight},
		{"negative", -1, -1, DefaultWidth, DefaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeometry(tt.width, tt.height)
			assert.Equal(t, tt.wantW, g.Width())
			assert.Equal(t, tt.wantH, g.Height())
		})
	}
}

func TestSetSizeRejectsNonPositive(t *testing.T) {
	g := NewGeometry(1024, 768)
	g.SetSize(0, 768, DriverWidth)
	g.SetSize(1024, -5, DriverHeight)

	assert.Equal(t, 1024, g.Width())
	assert.Equal(t, 768, g.Height())
	assert.InDelta(t, 4.0/3.0, g.Aspect(), 1e-9)
}

func TestSetSizeLockedRecomputesOtherDimension(t *testing.T) {
	g := NewGeometry(1024, 768)
	g.SetLockAspect(true)

	// Width drives: height follows the 4:3 ratio
	g.SetSize(800, 768, DriverWidth)
	assert.Equal(t, 800, g.Width())
	assert.Equal(t, 600, g.Height())

	// Height drives: width follows
	g.SetSize(800, 768, DriverHeight)
	assert.Equal(t, 1024, g.Width())
	assert.Equal(t, 768, g.Height())
}

func TestLockedResizeRoundTrips(t *testing.T) {
	g := NewGeometry(1024, 768)
	g.SetLockAspect(true)

	g.SetSize(512, 1, DriverWidth)
	assert.Equal(t, 512, g.Width())
	assert.Equal(t, 384, g.Height())

	g.SetSize(1, 768, DriverHeight)
	assert.Equal(t, 1024, g.Width())
	assert.Equal(t, 768, g.Height())
	assert.InDelta(t, 4.0/3.0, g.Aspect(), 1e-9, "the lock never drifts the stored ratio")
}

func TestSetSizeUnlockedRecomputesAspect(t *testing.T) {
	g := NewGeometry(1024, 768)

	g.SetSize(1920, 1080, DriverWidth)
	assert.Equal(t, 1920, g.Width())
	assert.Equal(t, 1080, g.Height())
	assert.InDelta(t, 16.0/9.0, g.Aspect(), 1e-9)

	// The new ratio governs subsequent locked resizes
	g.SetLockAspect(true)
	g.SetSize(960, 1080, DriverWidth)
	assert.Equal(t, 540, g.Height())
}

func TestFitModePreservesStoredBox(t *testing.T) {
	g := NewGeometry(1024, 768)
	g.SetFitMode(true)

	box := g.Box()
	assert.True(t, box.Fill)

	// Sizing intents are ignored while the surface fills its container
	g.SetSize(640, 480, DriverWidth)
	g.ApplyPreset(1920, 1080)
	assert.Equal(t, 1024, g.Width())
	assert.Equal(t, 768, g.Height())

	g.SetFitMode(false)
	box = g.Box()
	assert.False(t, box.Fill)
	assert.Equal(t, 1024, box.Width, "leaving fit restores the exact previous box")
	assert.Equal(t, 768, box.Height)
}

func TestApplyPreset(t *testing.T) {
	g := NewGeometry(1024, 768)

	g.ApplyPreset(1280, 800)
	assert.Equal(t, 1280, g.Width())
	assert.Equal(t, 800, g.Height())
	assert.InDelta(t, 1280.0/800.0, g.Aspect(), 1e-9)

	// With the lock on, presets keep the stored ratio and let width drive
	g.SetLockAspect(true)
	g.ApplyPreset(1920, 1080)
	assert.Equal(t, 1920, g.Width())
	assert.Equal(t, 1200, g.Height())
}
