package testutil

import (
	"context"

	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/stretchr/testify/mock"
)

var _ s3.Service = (*MockS3Service)(nil)

// MockS3Service is a testify mock of the document archive
type MockS3Service struct {
	mock.Mock
}

func NewMockS3Service() *MockS3Service {
	return &MockS3Service{}
}

func (m *MockS3Service) UploadDocument(ctx context.Context, document *s3.Document) (*s3.ArchivedDocument, error) {
	args := m.Called(ctx, document)
	archived, _ := args.Get(0).(*s3.ArchivedDocument)
	return archived, args.Error(1)
}

func (m *MockS3Service) GetPresignedUrl(ctx context.Context, invoiceID string) (string, error) {
	args := m.Called(ctx, invoiceID)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) Exists(ctx context.Context, invoiceID string) (bool, error) {
	args := m.Called(ctx, invoiceID)
	return args.Bool(0), args.Error(1)
}
