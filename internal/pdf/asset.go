package pdf

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/settings"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/h2non/filetype"
	"github.com/hashicorp/go-retryablehttp"
)

// maxLogoBytes bounds how much of a remote logo is read
const maxLogoBytes = 2 << 20

// Asset is a decoded image ready to be placed on the page
type Asset struct {
	Name   string
	Type   string
	Data   []byte
	Width  int
	Height int
}

// AssetResolver locates the company logo. A missing logo is not an error: the
// resolver reports false and the header falls back to the text wordmark.
type AssetResolver interface {
	Resolve(ctx context.Context, company *settings.CompanySettings) (*Asset, bool)
}

// NewAsset sniffs data and accepts png, jpeg and gif images with readable dimensions
func NewAsset(name string, data []byte) (*Asset, bool) {
	if len(data) == 0 {
		return nil, false
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, false
	}

	switch kind.Extension {
	case "png", "jpg", "gif":
	default:
		return nil, false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return nil, false
	}

	return &Asset{
		Name:   name,
		Type:   kind.Extension,
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, true
}

// FitInto returns the largest rectangle with the asset's aspect ratio that fits in box,
// anchored at the box's top left corner.
func (a *Asset) FitInto(box Rect) Rect {
	ratio := float64(a.Width) / float64(a.Height)
	w, h := box.W, box.W/ratio
	if h > box.H {
		h = box.H
		w = h * ratio
	}
	return Rect{X: box.X, Y: box.Y, W: w, H: h}
}

// FileAssetResolver tries candidate paths in order, the first readable image wins
type FileAssetResolver struct {
	paths  []string
	logger *logger.Logger
}

func NewFileAssetResolver(paths []string, log *logger.Logger) *FileAssetResolver {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &FileAssetResolver{paths: paths, logger: log}
}

func (r *FileAssetResolver) Resolve(_ context.Context, _ *settings.CompanySettings) (*Asset, bool) {
	for _, path := range r.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if asset, ok := NewAsset("logo-file", data); ok {
			return asset, true
		}
		r.logger.Warnw("logo candidate is not a supported image", "path", path)
	}
	return nil, false
}

// HTTPAssetResolver downloads the logo URL stored in the company settings
type HTTPAssetResolver struct {
	client *retryablehttp.Client
	logger *logger.Logger
}

func NewHTTPAssetResolver(log *logger.Logger) *HTTPAssetResolver {
	if log == nil {
		log = logger.NewNopLogger()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil
	return &HTTPAssetResolver{client: client, logger: log}
}

func (r *HTTPAssetResolver) Resolve(ctx context.Context, company *settings.CompanySettings) (*Asset, bool) {
	if company == nil || company.LogoURL == "" {
		return nil, false
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, company.LogoURL, nil)
	if err != nil {
		r.logger.Warnw("invalid logo url", "url", company.LogoURL, "error", err)
		return nil, false
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warnw("failed to fetch logo", "url", company.LogoURL, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warnw("logo url returned unexpected status", "url", company.LogoURL, "status", resp.StatusCode)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		r.logger.Warnw("failed to read logo", "url", company.LogoURL, "error", err)
		return nil, false
	}

	asset, ok := NewAsset("logo-remote", data)
	if !ok {
		r.logger.Warnw("logo url is not a supported image", "url", company.LogoURL)
	}
	return asset, ok
}

// ChainResolver asks each resolver in turn
type ChainResolver []AssetResolver

func (c ChainResolver) Resolve(ctx context.Context, company *settings.CompanySettings) (*Asset, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if asset, ok := r.Resolve(ctx, company); ok {
			return asset, true
		}
	}
	return nil, false
}

// StaticAssetResolver always returns the same asset, nil meaning no logo
type StaticAssetResolver struct {
	Asset *Asset
}

func (s StaticAssetResolver) Resolve(context.Context, *settings.CompanySettings) (*Asset, bool) {
	return s.Asset, s.Asset != nil
}
