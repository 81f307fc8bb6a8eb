package service

import (
	"errors"
	"testing"
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/s3"
	"github.com/factuurdesk/factuurdesk/internal/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	generator *testutil.MockPDFGenerator
	archive   *testutil.MockS3Service
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.generator = testutil.NewMockPDFGenerator()
	s.archive = testutil.NewMockS3Service()

	s.SeedInvoices(testutil.NewInvoice("2025-010").
		IssuedOn(testutil.Date(2025, time.February, 1)).
		WithTotals("100", "21"))
}

func (s *DocumentServiceSuite) newService(archive s3.Service) DocumentService {
	params := NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetCache(),
		s.GetSentry(),
		archive,
		s.GetStores().InvoiceRepo,
		s.GetStores().SettingsRepo,
	)
	return NewDocumentService(params, s.generator)
}

func renderedDocument() *pdf.Document {
	return &pdf.Document{
		InvoiceID: "inv_2025-010",
		FileName:  "factuur-2025-010.pdf",
		Bytes:     []byte("%PDF-1.3 test"),
	}
}

func (s *DocumentServiceSuite) TestRenderInvoicePassesPaymentURL() {
	s.generator.On("Render", mock.Anything, mock.MatchedBy(func(in pdf.RenderInput) bool {
		return in.Invoice.InvoiceNumber == "2025-010" && in.PaymentURL == "https://pay.example.com/x"
	})).Return(renderedDocument(), nil).Once()

	doc, err := s.newService(nil).RenderInvoice(s.GetContext(), "inv_2025-010", "https://pay.example.com/x")
	s.Require().NoError(err)
	s.Equal("factuur-2025-010.pdf", doc.FileName)
	s.generator.AssertExpectations(s.T())
}

func (s *DocumentServiceSuite) TestRenderInvoiceFailureIsLoggedWithInvoiceNumber() {
	core, logs := observer.New(zap.ErrorLevel)
	params := NewServiceParams(
		&logger.Logger{SugaredLogger: zap.New(core).Sugar()},
		s.GetConfig(),
		s.GetCache(),
		s.GetSentry(),
		nil,
		s.GetStores().InvoiceRepo,
		s.GetStores().SettingsRepo,
	)
	renderErr := ierr.WithError(errors.New("fpdf: broken image")).Mark(ierr.ErrSystem)
	s.generator.On("Render", mock.Anything, mock.Anything).Return(nil, renderErr).Once()

	_, err := NewDocumentService(params, s.generator).RenderInvoice(s.GetContext(), "inv_2025-010", "")
	s.True(ierr.Is(err, ierr.ErrSystem))

	entries := logs.FilterMessage("failed to render invoice document").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()
	s.Equal("inv_2025-010", fields["invoice_id"])
	s.Equal("2025-010", fields["invoice_number"])
}

func (s *DocumentServiceSuite) TestRenderInvoiceNotFound() {
	_, err := s.newService(nil).RenderInvoice(s.GetContext(), "inv_missing", "")
	s.True(ierr.IsNotFound(err))
	s.generator.AssertNotCalled(s.T(), "Render", mock.Anything, mock.Anything)
}

func (s *DocumentServiceSuite) TestRenderInvoiceRequiresID() {
	_, err := s.newService(nil).RenderInvoice(s.GetContext(), "", "")
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestArchiveDisabled() {
	_, err := s.newService(nil).ArchiveInvoice(s.GetContext(), "inv_2025-010")
	s.True(ierr.Is(err, ierr.ErrInvalidOperation))

	_, err = s.newService(nil).GetInvoicePDFUrl(s.GetContext(), "inv_2025-010")
	s.True(ierr.Is(err, ierr.ErrInvalidOperation))
}

func (s *DocumentServiceSuite) TestArchiveUploadsRenderedBytes() {
	s.generator.On("Render", mock.Anything, mock.Anything).Return(renderedDocument(), nil).Once()
	s.archive.On("UploadDocument", mock.Anything, mock.MatchedBy(func(d *s3.Document) bool {
		return d.InvoiceID == "inv_2025-010" && string(d.Data) == "%PDF-1.3 test" && d.ContentType == pdf.ContentType
	})).Return(&s3.ArchivedDocument{Bucket: "invoices", Key: "documents/inv_2025-010.pdf"}, nil).Once()
	s.archive.On("GetPresignedUrl", mock.Anything, "inv_2025-010").Return("https://s3.example.com/signed", nil).Once()

	archived, err := s.newService(s.archive).ArchiveInvoice(s.GetContext(), "inv_2025-010")
	s.Require().NoError(err)
	s.Equal("documents/inv_2025-010.pdf", archived.Key)
	s.Equal("https://s3.example.com/signed", archived.URL)
	s.generator.AssertNumberOfCalls(s.T(), "Render", 1)
	s.archive.AssertExpectations(s.T())
}

func (s *DocumentServiceSuite) TestArchiveUploadFailure() {
	s.generator.On("Render", mock.Anything, mock.Anything).Return(renderedDocument(), nil).Once()
	s.archive.On("UploadDocument", mock.Anything, mock.Anything).
		Return(nil, ierr.WithError(errors.New("slow down")).Mark(ierr.ErrHTTPClient)).Once()

	_, err := s.newService(s.archive).ArchiveInvoice(s.GetContext(), "inv_2025-010")
	s.True(ierr.IsHTTPClient(err))
	s.archive.AssertNotCalled(s.T(), "GetPresignedUrl", mock.Anything, mock.Anything)
}

func (s *DocumentServiceSuite) TestPDFUrlForArchivedInvoice() {
	s.archive.On("Exists", mock.Anything, "inv_2025-010").Return(true, nil).Once()
	s.archive.On("GetPresignedUrl", mock.Anything, "inv_2025-010").Return("https://s3.example.com/signed", nil).Once()

	url, err := s.newService(s.archive).GetInvoicePDFUrl(s.GetContext(), "inv_2025-010")
	s.Require().NoError(err)
	s.Equal("https://s3.example.com/signed", url)
	s.generator.AssertNotCalled(s.T(), "Render", mock.Anything, mock.Anything)
}

func (s *DocumentServiceSuite) TestPDFUrlArchivesFirst() {
	s.archive.On("Exists", mock.Anything, "inv_2025-010").Return(false, nil).Once()
	s.generator.On("Render", mock.Anything, mock.Anything).Return(renderedDocument(), nil).Once()
	s.archive.On("UploadDocument", mock.Anything, mock.Anything).
		Return(&s3.ArchivedDocument{Key: "documents/inv_2025-010.pdf"}, nil).Once()
	s.archive.On("GetPresignedUrl", mock.Anything, "inv_2025-010").Return("https://s3.example.com/fresh", nil).Once()

	url, err := s.newService(s.archive).GetInvoicePDFUrl(s.GetContext(), "inv_2025-010")
	s.Require().NoError(err)
	s.Equal("https://s3.example.com/fresh", url)
	s.archive.AssertExpectations(s.T())
}
