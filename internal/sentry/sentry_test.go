package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/factuurdesk/factuurdesk/internal/config"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = false
	svc := NewSentryService(cfg, logger.NewNopLogger())

	ctx := context.Background()
	span, spanCtx := svc.StartRenderSpan(ctx, "inv_1")
	assert.Nil(t, span)
	assert.Equal(t, ctx, spanCtx)

	svc.CaptureWithContext(ctx, errors.New("boom"), map[string]string{"k": "v"})
	svc.CaptureException(errors.New("boom"))
	assert.True(t, svc.Flush(1))
	FinishSpan(span)

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
}
