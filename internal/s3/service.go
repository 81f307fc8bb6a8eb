package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/factuurdesk/factuurdesk/internal/config"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
	uploadMaxRetries             = 4
)

// Service archives invoice documents
type Service interface {
	UploadDocument(ctx context.Context, document *Document) (*ArchivedDocument, error)
	GetPresignedUrl(ctx context.Context, invoiceID string) (string, error)
	Exists(ctx context.Context, invoiceID string) (bool, error)
}

// objectAPI is the subset of the s3 client used here
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type s3ServiceImpl struct {
	client    objectAPI
	presigner presignAPI
	config    *config.S3Config
	logger    *logger.Logger
	// newBackOff is replaced in tests to avoid waiting
	newBackOff func() backoff.BackOff
}

// NewService returns nil when archiving is disabled
func NewService(cfg *config.Configuration, log *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newService(client, s3.NewPresignClient(client), &cfg.S3, log), nil
}

func newService(client objectAPI, presigner presignAPI, cfg *config.S3Config, log *logger.Logger) *s3ServiceImpl {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &s3ServiceImpl{
		client:    client,
		presigner: presigner,
		config:    cfg,
		logger:    log,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// ObjectKey is the stable key of an invoice's archived PDF. Archiving again overwrites it.
func (s *s3ServiceImpl) ObjectKey(invoiceID string) string {
	key := url.PathEscape(invoiceID) + ".pdf"
	if s.config.InvoiceBucketConfig.KeyPrefix != "" {
		return fmt.Sprintf("%s/%s", s.config.InvoiceBucketConfig.KeyPrefix, key)
	}
	return key
}

func (s *s3ServiceImpl) bucket() string {
	return s.config.InvoiceBucketConfig.Bucket
}

// UploadDocument stores the document, retrying transient failures with exponential backoff
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) (*ArchivedDocument, error) {
	if document == nil || len(document.Data) == 0 {
		return nil, ierr.NewError("document is empty").
			WithHint("Cannot archive an empty document").
			Mark(ierr.ErrValidation)
	}

	key := s.ObjectKey(document.InvoiceID)
	metadata := map[string]string{
		"archive-id": document.ArchiveID,
		"invoice-id": document.InvoiceID,
	}
	for k, v := range document.Metadata {
		metadata[k] = v
	}

	attempt := 0
	operation := func() error {
		attempt++
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:             aws.String(s.bucket()),
			Key:                aws.String(key),
			Body:               bytes.NewReader(document.Data),
			ContentType:        aws.String(document.ContentType),
			ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", document.FileName)),
			Metadata:           metadata,
		})
		if err != nil {
			s.logger.Warnw("document upload failed",
				"bucket", s.bucket(),
				"key", key,
				"attempt", attempt,
				"error", err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uploadMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			WithReportableDetails(map[string]any{"attempts": attempt}).
			Mark(ierr.ErrHTTPClient)
	}

	s.logger.Infow("document archived",
		"archive_id", document.ArchiveID,
		"invoice_id", document.InvoiceID,
		"key", key,
		"attempts", attempt)

	return &ArchivedDocument{
		ArchiveID: document.ArchiveID,
		Bucket:    s.bucket(),
		Key:       key,
	}, nil
}

// Exists reports whether an invoice has been archived
func (s *s3ServiceImpl) Exists(ctx context.Context, invoiceID string) (bool, error) {
	key := s.ObjectKey(invoiceID)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return false, nil
		}
		return false, ierr.WithError(err).WithHint("failed to check if document exists").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrHTTPClient)
	}
	return true, nil
}

// GetPresignedUrl returns a temporary download link of an archived invoice
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, invoiceID string) (string, error) {
	key := s.ObjectKey(invoiceID)

	duration, err := time.ParseDuration(s.config.InvoiceBucketConfig.PresignExpiryDuration)
	if err != nil || duration <= 0 {
		duration = defaultPresignExpiryDuration
	}

	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket()),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}
