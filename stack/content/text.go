package content

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/hnimtadd/stackview/stack/geometry"
	dw "github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/unicode"
)

// Text is a scrollable text region. Its content size is measured in
// terminal cells: as wide as its widest line and one row per line. Bytes
// written to it are decoded as UTF-8; invalid sequences become U+FFFD and a
// sequence split across two writes is held back until it is complete.
type Text struct {
	mu sync.Mutex

	// Completed lines plus the open last line. Always has at least one
	// element.
	lines []string
	// Trailing bytes of an incomplete UTF-8 sequence.
	pending []byte

	axes    arbiter.Axis
	enabled bool

	observers
}

func NewText(s string) *Text {
	t := &Text{lines: []string{""}, axes: arbiter.AxisVertical}
	t.appendString(s)
	return t
}

// Write appends p and notifies observers when the content size changed.
func (t *Text) Write(p []byte) (int, error) {
	t.mu.Lock()
	before := t.sizeLocked()

	buf := append(append([]byte(nil), t.pending...), p...)
	complete := completePrefix(buf)

	decoded, err := unicode.UTF8.NewDecoder().Bytes(buf[:complete])
	if err != nil {
		t.mu.Unlock()
		return 0, err
	}
	t.pending = buf[complete:]
	t.appendString(string(decoded))
	after := t.sizeLocked()
	t.mu.Unlock()

	if after != before {
		t.notify(after)
	}
	return len(p), nil
}

// SetText replaces the whole content.
func (t *Text) SetText(s string) {
	t.mu.Lock()
	before := t.sizeLocked()
	t.lines = []string{""}
	t.pending = nil
	t.appendString(s)
	after := t.sizeLocked()
	t.mu.Unlock()

	if after != before {
		t.notify(after)
	}
}

func (t *Text) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}

func (t *Text) appendString(s string) {
	s = strings.ReplaceAll(s, "\r", "")
	parts := strings.Split(s, "\n")
	last := len(t.lines) - 1
	t.lines[last] += parts[0]
	t.lines = append(t.lines, parts[1:]...)
}

// completePrefix returns the length of the longest prefix of buf that does
// not end inside a UTF-8 sequence.
func completePrefix(buf []byte) int {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(buf[i]) {
			continue
		}
		if utf8.FullRune(buf[i:]) {
			return len(buf)
		}
		return i
	}
	return len(buf)
}

func (t *Text) rowsLocked() []string {
	if t.lines[len(t.lines)-1] == "" {
		return t.lines[:len(t.lines)-1]
	}
	return t.lines
}

func (t *Text) sizeLocked() geometry.Size {
	rows := t.rowsLocked()
	width := 0
	for _, line := range rows {
		width = max(width, dw.StringWidth(line))
	}
	return geometry.Size{Width: width, Height: len(rows)}
}

func (t *Text) ContentSize() geometry.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sizeLocked()
}

func (t *Text) ObserveContentSize(handler func(geometry.Size)) (cancel func()) {
	return t.observe(handler)
}

// Lines returns n rows starting at content row from, each fitted to width
// cells. Rows outside the content are blank.
func (t *Text) Lines(from, n, width int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := t.rowsLocked()
	out := make([]string, 0, max(n, 0))
	for y := from; y < from+n; y++ {
		line := ""
		if y >= 0 && y < len(rows) {
			line = rows[y]
		}
		out = append(out, FitWidth(line, width))
	}
	return out
}

// SetAxes overrides the default vertical scroll axis.
func (t *Text) SetAxes(axes arbiter.Axis) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.axes = axes
}

func (t *Text) ScrollAxes() arbiter.Axis {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.axes
}

func (t *Text) SetScrollEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

func (t *Text) ScrollEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// FitWidth truncates or pads s to exactly width display cells.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return dw.FillRight(dw.Truncate(s, width, ""), width)
}

func blankLines(n, width int) []string {
	out := make([]string, 0, max(n, 0))
	for range n {
		out = append(out, strings.Repeat(" ", max(width, 0)))
	}
	return out
}
