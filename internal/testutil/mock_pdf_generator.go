package testutil

import (
	"context"

	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator is a testify mock of pdf.Generator
type MockPDFGenerator struct {
	mock.Mock
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}

// Render implements pdf.Generator
func (m *MockPDFGenerator) Render(ctx context.Context, in pdf.RenderInput) (*pdf.Document, error) {
	args := m.Called(ctx, in)
	doc, _ := args.Get(0).(*pdf.Document)
	return doc, args.Error(1)
}
