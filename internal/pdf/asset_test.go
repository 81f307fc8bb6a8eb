package pdf_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsset(t *testing.T) {
	asset, ok := pdf.NewAsset("logo", pngBytes(t, 8, 4))
	require.True(t, ok)
	assert.Equal(t, "png", asset.Type)
	assert.Equal(t, 8, asset.Width)
	assert.Equal(t, 4, asset.Height)

	_, ok = pdf.NewAsset("logo", []byte("<svg></svg>"))
	assert.False(t, ok)
	_, ok = pdf.NewAsset("logo", nil)
	assert.False(t, ok)
}

func TestAssetFitInto(t *testing.T) {
	wide, _ := pdf.NewAsset("w", pngBytes(t, 100, 10))
	tall, _ := pdf.NewAsset("t", pngBytes(t, 10, 100))
	box := pdf.Rect{X: 15, Y: 15, W: 55, H: 20}

	assert.Equal(t, pdf.Rect{X: 15, Y: 15, W: 55, H: 5.5}, wide.FitInto(box))
	r := tall.FitInto(box)
	assert.InDelta(t, 2.0, r.W, 0.0001)
	assert.InDelta(t, 20.0, r.H, 0.0001)
}

func TestFileAssetResolver_FirstReadableImageWins(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "logo.txt")
	first := filepath.Join(dir, "logo.png")
	second := filepath.Join(dir, "logo2.png")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(first, pngBytes(t, 3, 3), 0o600))
	require.NoError(t, os.WriteFile(second, pngBytes(t, 9, 3), 0o600))

	r := pdf.NewFileAssetResolver([]string{filepath.Join(dir, "missing.png"), notImage, first, second}, nil)
	asset, ok := r.Resolve(context.Background(), nil)
	require.True(t, ok)
	assert.Equal(t, 3, asset.Width)

	_, ok = pdf.NewFileAssetResolver([]string{filepath.Join(dir, "missing.png")}, nil).Resolve(context.Background(), nil)
	assert.False(t, ok)
}

func TestHTTPAssetResolver(t *testing.T) {
	logo := pngBytes(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logo.png" {
			_, _ = w.Write(logo)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := pdf.NewHTTPAssetResolver(nil)

	asset, ok := r.Resolve(context.Background(), &settings.CompanySettings{LogoURL: srv.URL + "/logo.png"})
	require.True(t, ok)
	assert.Equal(t, 5, asset.Width)

	_, ok = r.Resolve(context.Background(), &settings.CompanySettings{LogoURL: srv.URL + "/missing.png"})
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), &settings.CompanySettings{})
	assert.False(t, ok)
}

func TestChainResolver(t *testing.T) {
	asset, _ := pdf.NewAsset("logo", pngBytes(t, 2, 2))
	chain := pdf.ChainResolver{nil, pdf.StaticAssetResolver{}, pdf.StaticAssetResolver{Asset: asset}}

	got, ok := chain.Resolve(context.Background(), nil)
	require.True(t, ok)
	assert.Same(t, asset, got)

	_, ok = pdf.ChainResolver{}.Resolve(context.Background(), nil)
	assert.False(t, ok)
}
