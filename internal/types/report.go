package types

import (
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/samber/lo"
)

// ReportKind names one of the exportable financial reports
type ReportKind string

const (
	ReportKindTax       ReportKind = "tax"
	ReportKindRevenue   ReportKind = "revenue"
	ReportKindAging     ReportKind = "aging"
	ReportKindAgingBand ReportKind = "aging-band"
)

func (k ReportKind) String() string {
	return string(k)
}

func (k ReportKind) Validate() error {
	allowed := []ReportKind{
		ReportKindTax,
		ReportKindRevenue,
		ReportKindAging,
		ReportKindAgingBand,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid report kind").
			WithHint("Please provide a valid report kind").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
