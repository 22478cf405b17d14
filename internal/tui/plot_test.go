package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSamples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		size   int
		pushes []float64
		want   []float64
		latest float64
	}{
		{"empty", 3, nil, nil, 0},
		{"partial", 3, []float64{1, 2}, []float64{1, 2}, 2},
		{"full", 3, []float64{1, 2, 3}, []float64{1, 2, 3}, 3},
		{"evicts oldest", 3, []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5}, 5},
		{"zero size holds one", 0, []float64{7, 8}, []float64{8}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newSamples(tt.size)
			for _, v := range tt.pushes {
				s.push(v)
			}
			assert.Equal(t, tt.want, s.values())
			assert.Equal(t, len(tt.want), s.len())
			assert.Equal(t, tt.latest, s.latest())
		})
	}
}

func TestSamples_Resize(t *testing.T) {
	t.Parallel()
	s := newSamples(4)
	for _, v := range []float64{1, 2, 3, 4} {
		s.push(v)
	}

	s.resize(2)
	assert.Equal(t, []float64{3, 4}, s.values())

	s.resize(5)
	s.push(5)
	assert.Equal(t, []float64{3, 4, 5}, s.values())
	assert.Len(t, s.buf, 5)

	s.resize(5)
	assert.Equal(t, []float64{3, 4, 5}, s.values())

	s.clear()
	assert.Zero(t, s.len())
	assert.Nil(t, s.values())
}

func TestSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"bottom", []float64{0, 0}, "▁▁"},
		{"top", []float64{100}, "█"},
		{"clamped", []float64{-20, 250}, "▁█"},
		{"ramp", []float64{0, 50, 100}, "▁▄█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sparkline(tt.values))
		})
	}
}

func TestBrailleRows(t *testing.T) {
	t.Parallel()

	assert.Nil(t, brailleRows(nil, 4, 2))
	assert.Nil(t, brailleRows([]float64{50}, 0, 2))
	assert.Nil(t, brailleRows([]float64{50}, 4, 0))

	lines := brailleRows([]float64{0, 100}, 3, 2)
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 3, utf8.RuneCountInString(l))
	}
	// Samples are right-aligned: the last cell holds both dots.
	top, bottom := []rune(lines[0]), []rune(lines[1])
	assert.Equal(t, rune(brailleBlank), top[0])
	assert.Equal(t, rune(brailleBlank|0x08), top[2])
	assert.Equal(t, rune(brailleBlank|0x40), bottom[2])
}

func TestBrailleRows_KeepsNewest(t *testing.T) {
	t.Parallel()
	values := make([]float64, 10)
	values[9] = 100
	lines := brailleRows(values, 2, 1)
	assert.Len(t, lines, 1)
	assert.False(t, strings.ContainsRune(lines[0], brailleBlank))
}
