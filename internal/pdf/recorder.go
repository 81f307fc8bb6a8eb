package pdf

import (
	"strings"

	"github.com/samber/lo"
)

// Op is the kind of a recorded draw instruction
type Op string

const (
	OpText            Op = "text"
	OpFillRect        Op = "fill_rect"
	OpFillRoundedRect Op = "fill_rounded_rect"
	OpLine            Op = "line"
	OpImage           Op = "image"
	OpLink            Op = "link"
)

// Instruction is one draw call in page order
type Instruction struct {
	Op     Op      `json:"op"`
	Rect   Rect    `json:"rect"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Text   string  `json:"text,omitempty"`
	Font   *Font   `json:"font,omitempty"`
	Color  *Color  `json:"color,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
	URL    string  `json:"url,omitempty"`
	Image  string  `json:"image,omitempty"`
}

// Recorder forwards every call to the wrapped surface and keeps the instruction stream.
// Text is measured by the wrapped surface.
type Recorder struct {
	inner        Surface
	instructions []Instruction
}

func NewRecorder(inner Surface) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) Text(x, y float64, s string, f Font) {
	r.inner.Text(x, y, s, f)
	r.instructions = append(r.instructions, Instruction{
		Op:   OpText,
		Rect: Rect{X: x, Y: y, W: r.inner.TextWidth(s, f)},
		Text: s,
		Font: &f,
	})
}

func (r *Recorder) TextWidth(s string, f Font) float64 {
	return r.inner.TextWidth(s, f)
}

func (r *Recorder) FillRect(rect Rect, c Color) {
	r.inner.FillRect(rect, c)
	r.instructions = append(r.instructions, Instruction{Op: OpFillRect, Rect: rect, Color: &c})
}

func (r *Recorder) FillRoundedRect(rect Rect, radius float64, c Color) {
	r.inner.FillRoundedRect(rect, radius, c)
	r.instructions = append(r.instructions, Instruction{Op: OpFillRoundedRect, Rect: rect, Radius: radius, Color: &c})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, s Stroke) {
	r.inner.Line(x1, y1, x2, y2, s)
	r.instructions = append(r.instructions, Instruction{
		Op:     OpLine,
		Rect:   Rect{X: x1, Y: y1},
		X2:     x2,
		Y2:     y2,
		Stroke: &s,
	})
}

func (r *Recorder) Image(a *Asset, rect Rect) {
	r.inner.Image(a, rect)
	name := ""
	if a != nil {
		name = a.Name
	}
	r.instructions = append(r.instructions, Instruction{Op: OpImage, Rect: rect, Image: name})
}

func (r *Recorder) Link(rect Rect, url string) {
	r.inner.Link(rect, url)
	r.instructions = append(r.instructions, Instruction{Op: OpLink, Rect: rect, URL: url})
}

// Instructions returns a copy of the recorded stream
func (r *Recorder) Instructions() []Instruction {
	return append([]Instruction(nil), r.instructions...)
}

// Texts returns the text of every text instruction in draw order
func Texts(instructions []Instruction) []string {
	return lo.FilterMap(instructions, func(in Instruction, _ int) (string, bool) {
		return in.Text, in.Op == OpText
	})
}

// HasText reports whether any text instruction contains s
func HasText(instructions []Instruction, s string) bool {
	return lo.ContainsBy(instructions, func(in Instruction) bool {
		return in.Op == OpText && strings.Contains(in.Text, s)
	})
}

// Links returns the target of every link instruction in draw order
func Links(instructions []Instruction) []string {
	return lo.FilterMap(instructions, func(in Instruction, _ int) (string, bool) {
		return in.URL, in.Op == OpLink
	})
}
