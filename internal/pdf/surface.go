package pdf

// Page geometry in millimetres, A4 portrait
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

// Weight is the font weight of a text run
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

// Color is an RGB colour
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Font describes a text run. Size is in points.
type Font struct {
	Weight Weight  `json:"weight"`
	Size   float64 `json:"size"`
	Color  Color   `json:"color"`
}

// Stroke describes a line. An empty Dash draws a solid line.
type Stroke struct {
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"`
}

// Rect is an axis aligned rectangle, X and Y are its top left corner
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Surface is everything a section needs to draw. Coordinates are millimetres from the
// top left corner of the page. Text y is the baseline.
type Surface interface {
	Text(x, y float64, s string, f Font)
	TextWidth(s string, f Font) float64
	FillRect(r Rect, c Color)
	FillRoundedRect(r Rect, radius float64, c Color)
	Line(x1, y1, x2, y2 float64, s Stroke)
	Image(a *Asset, r Rect)
	Link(r Rect, url string)
}
