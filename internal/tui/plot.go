package tui

// samples is a bounded history of chart values. Once full, each push
// evicts the oldest value.
type samples struct {
	buf   []float64
	next  int
	count int
}

func newSamples(size int) *samples {
	return &samples{buf: make([]float64, max(size, 1))}
}

func (s *samples) push(v float64) {
	s.buf[s.next] = v
	s.next = (s.next + 1) % len(s.buf)
	s.count = min(s.count+1, len(s.buf))
}

func (s *samples) len() int { return s.count }

// latest returns the newest value, or 0 when empty.
func (s *samples) latest() float64 {
	if s.count == 0 {
		return 0
	}
	return s.buf[(s.next+len(s.buf)-1)%len(s.buf)]
}

// values returns the history oldest first.
func (s *samples) values() []float64 {
	if s.count == 0 {
		return nil
	}
	out := make([]float64, s.count)
	first := s.next - s.count + len(s.buf)
	for i := range out {
		out[i] = s.buf[(first+i)%len(s.buf)]
	}
	return out
}

// resize keeps the newest values that fit the new size.
func (s *samples) resize(size int) {
	size = max(size, 1)
	if size == len(s.buf) {
		return
	}
	kept := s.values()
	if len(kept) > size {
		kept = kept[len(kept)-size:]
	}
	s.buf = make([]float64, size)
	s.next, s.count = 0, 0
	for _, v := range kept {
		s.push(v)
	}
}

func (s *samples) clear() {
	s.next, s.count = 0, 0
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

var blockLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline draws percentages (0..100) as one block glyph per value.
func sparkline(values []float64) string {
	out := make([]rune, len(values))
	top := len(blockLevels) - 1
	for i, v := range values {
		out[i] = blockLevels[min(int(clampPercent(v)/100*float64(top)), top)]
	}
	return string(out)
}

// brailleBits[col][row] is the dot bit of a 2x4 braille cell.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// brailleRows plots percentages as a dot chart of rows lines and width
// cells. Each cell holds two samples; the newest sample is rightmost.
func brailleRows(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotCols, dotRows := 2*width, 4*rows
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = brailleBlank
		}
	}
	for i, v := range values {
		x := offset + i
		y := dotRows - 1 - int(clampPercent(v)/100*float64(dotRows-1))
		grid[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = string(cells)
	}
	return lines
}
