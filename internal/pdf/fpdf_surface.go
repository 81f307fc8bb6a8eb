package pdf

import (
	"bytes"
	"io"
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// fpdfSurface draws on a single A4 page with the core Helvetica fonts.
// Strings pass through a cp1252 translator so "€" and accented names render.
type fpdfSurface struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	images    map[string]bool
}

// newFpdfSurface starts a document whose metadata dates are fixed to stamp,
// so the same input always produces the same bytes.
func newFpdfSurface(stamp time.Time, title string) *fpdfSurface {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetCatalogSort(true)
	doc.SetCreator("FactuurDesk", true)
	doc.SetTitle(title, true)
	doc.AddPage()

	return &fpdfSurface{
		pdf:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
		images:    make(map[string]bool),
	}
}

func (s *fpdfSurface) setFont(f Font) {
	style := ""
	if f.Weight == WeightBold {
		style = "B"
	}
	s.pdf.SetFont(fontFamily, style, f.Size)
}

func (s *fpdfSurface) Text(x, y float64, text string, f Font) {
	s.setFont(f)
	s.pdf.SetTextColor(int(f.Color.R), int(f.Color.G), int(f.Color.B))
	s.pdf.Text(x, y, s.translate(text))
}

func (s *fpdfSurface) TextWidth(text string, f Font) float64 {
	s.setFont(f)
	return s.pdf.GetStringWidth(s.translate(text))
}

func (s *fpdfSurface) FillRect(r Rect, c Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (s *fpdfSurface) FillRoundedRect(r Rect, radius float64, c Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.RoundedRect(r.X, r.Y, r.W, r.H, radius, "1234", "F")
}

func (s *fpdfSurface) Line(x1, y1, x2, y2 float64, st Stroke) {
	s.pdf.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	s.pdf.SetLineWidth(st.Width)
	s.pdf.SetDashPattern(st.Dash, 0)
	s.pdf.Line(x1, y1, x2, y2)
	if len(st.Dash) > 0 {
		s.pdf.SetDashPattern([]float64{}, 0)
	}
}

func (s *fpdfSurface) Image(a *Asset, r Rect) {
	if a == nil {
		return
	}
	opts := fpdf.ImageOptions{ImageType: a.Type}
	if !s.images[a.Name] {
		s.pdf.RegisterImageOptionsReader(a.Name, opts, bytes.NewReader(a.Data))
		s.images[a.Name] = true
	}
	s.pdf.ImageOptions(a.Name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

func (s *fpdfSurface) Link(r Rect, url string) {
	s.pdf.LinkString(r.X, r.Y, r.W, r.H, url)
}

// Output writes the finished document. The surface cannot be drawn on afterwards.
func (s *fpdfSurface) Output(w io.Writer) error {
	if err := s.pdf.Error(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to draw invoice document").
			Mark(ierr.ErrSystem)
	}
	if err := s.pdf.Output(w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write invoice document").
			Mark(ierr.ErrSystem)
	}
	return nil
}
