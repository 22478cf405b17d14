package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeaderModel_View(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, version, target string
		want, absent          []string
	}{
		{"release", "v1.2.0", "sin(1/2) k=32", []string{"numcalc v1.2.0", "sin(1/2) k=32", "Elapsed:"}, nil},
		{"dev build", "dev", "pi k=64", []string{"numcalc", "pi k=64"}, []string{"dev"}},
		{"no target", "", "", []string{"numcalc | Elapsed:"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHeaderModel(tt.version, tt.target)
			h.SetWidth(80)
			view := h.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, view, a)
			}
		})
	}
}

func TestHeaderModel_Clock(t *testing.T) {
	t.Parallel()
	h := NewHeaderModel("", "e")
	h.started = time.Now().Add(-2 * time.Second)
	h.SetDone()
	frozen := h.Elapsed()
	assert.GreaterOrEqual(t, frozen, 2*time.Second)
	assert.Equal(t, frozen, h.Elapsed())

	h.Reset()
	assert.Less(t, h.Elapsed(), time.Second)
	assert.True(t, h.finished.IsZero())
}
