package service

import (
	"context"
	"fmt"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/domain/invoice"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/report"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// ReportService computes the financial report views over the stored invoices
type ReportService interface {
	GetTaxReport(ctx context.Context, year, quarter int) (*report.TaxPeriodReport, error)
	GetRevenueReport(ctx context.Context, year int) (*report.RevenueReport, error)
	GetAgingReport(ctx context.Context, now time.Time) (*report.AgingReport, error)
	GetDashboard(ctx context.Context, year, quarter int, now time.Time) (*Dashboard, error)
	ExportCSV(ctx context.Context, req *ExportRequest) (*Export, error)
}

// Dashboard bundles the three report views computed over one snapshot
type Dashboard struct {
	Tax     *report.TaxPeriodReport `json:"tax"`
	Revenue *report.RevenueReport   `json:"revenue"`
	Aging   *report.AgingReport     `json:"aging"`
}

// ExportRequest selects a report and its parameters
type ExportRequest struct {
	Kind    types.ReportKind
	Year    int
	Quarter int
	// AsOf is the aging reference time, zero means now
	AsOf time.Time
	Band report.AgingBandKey
}

// Export is a rendered CSV file
type Export struct {
	FileName string
	Data     []byte
}

const ExportContentType = "text/csv; charset=utf-8"

type reportService struct {
	ServiceParams
	aggregator *report.Aggregator
	exporter   *report.Exporter
	now        func() time.Time
}

func NewReportService(params ServiceParams) ReportService {
	return &reportService{
		ServiceParams: params,
		aggregator:    report.NewAggregator(params.Config.Reports.Location(), params.Logger),
		exporter:      report.NewExporter(params.Logger, types.DefaultCurrency),
		now:           time.Now,
	}
}

// snapshot loads every invoice once; reports computed from it agree with each other
func (s *reportService) snapshot(ctx context.Context) ([]*invoice.Invoice, error) {
	invoices, err := s.InvoiceRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	s.Logger.Debugw("loaded invoice snapshot", "count", len(invoices))
	return invoices, nil
}

func (s *reportService) GetTaxReport(ctx context.Context, year, quarter int) (*report.TaxPeriodReport, error) {
	if err := validateQuarter(quarter); err != nil {
		return nil, err
	}
	invoices, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.TaxReport(invoices, year, quarter)
}

func (s *reportService) GetRevenueReport(ctx context.Context, year int) (*report.RevenueReport, error) {
	invoices, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.MonthlyRevenue(invoices, year), nil
}

func (s *reportService) GetAgingReport(ctx context.Context, now time.Time) (*report.AgingReport, error) {
	invoices, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Aging(invoices, s.asOf(now)), nil
}

func (s *reportService) GetDashboard(ctx context.Context, year, quarter int, now time.Time) (*Dashboard, error) {
	if err := validateQuarter(quarter); err != nil {
		return nil, err
	}
	invoices, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var dashboard Dashboard
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(context.Context) error {
		tax, err := s.aggregator.TaxReport(invoices, year, quarter)
		dashboard.Tax = tax
		return err
	})
	p.Go(func(context.Context) error {
		dashboard.Revenue = s.aggregator.MonthlyRevenue(invoices, year)
		return nil
	})
	p.Go(func(context.Context) error {
		dashboard.Aging = s.aggregator.Aging(invoices, s.asOf(now))
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *reportService) ExportCSV(ctx context.Context, req *ExportRequest) (*Export, error) {
	if req == nil {
		return nil, ierr.NewError("export request is required").
			WithHint("Please select a report to export").
			Mark(ierr.ErrValidation)
	}
	if err := req.Kind.Validate(); err != nil {
		return nil, err
	}

	var (
		data     []byte
		fileName string
		err      error
	)
	switch req.Kind {
	case types.ReportKindTax:
		var r *report.TaxPeriodReport
		if r, err = s.GetTaxReport(ctx, req.Year, req.Quarter); err != nil {
			return nil, err
		}
		data, err = s.exporter.TaxReportCSV(r)
		fileName = fmt.Sprintf("btw-%d-q%d.csv", req.Year, req.Quarter)
	case types.ReportKindRevenue:
		var r *report.RevenueReport
		if r, err = s.GetRevenueReport(ctx, req.Year); err != nil {
			return nil, err
		}
		data, err = s.exporter.RevenueCSV(r)
		fileName = fmt.Sprintf("omzet-%d.csv", req.Year)
	case types.ReportKindAging, types.ReportKindAgingBand:
		if req.Kind == types.ReportKindAgingBand && !req.Band.IsValid() {
			return nil, ierr.NewErrorf("unknown aging band %q", req.Band).
				WithHint("Please provide a valid aging band").
				WithReportableDetails(map[string]any{"allowed": report.AgingBandKeys}).
				Mark(ierr.ErrValidation)
		}
		var r *report.AgingReport
		if r, err = s.GetAgingReport(ctx, req.AsOf); err != nil {
			return nil, err
		}
		stamp := r.AsOf.Format("2006-01-02")
		if req.Kind == types.ReportKindAging {
			data, err = s.exporter.AgingSummaryCSV(r)
			fileName = fmt.Sprintf("ouderdom-%s.csv", stamp)
		} else {
			data, err = s.exporter.AgingBandCSV(r, req.Band)
			fileName = fmt.Sprintf("ouderdom-%s-%s.csv", req.Band, stamp)
		}
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("exported report", "kind", req.Kind, "file_name", fileName, "bytes", len(data))
	return &Export{FileName: fileName, Data: data}, nil
}

func (s *reportService) asOf(now time.Time) time.Time {
	if now.IsZero() {
		return s.now().In(s.Config.Reports.Location())
	}
	return now
}

func validateQuarter(quarter int) error {
	if quarter < 1 || quarter > 4 {
		return ierr.NewErrorf("invalid quarter %d", quarter).
			WithHint("Quarter must be between 1 and 4").
			Mark(ierr.ErrValidation)
	}
	return nil
}
