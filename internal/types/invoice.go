package types

import (
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates invoice is still being prepared and has not been sent
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates invoice has been delivered to the recipient
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusViewed indicates the recipient opened the invoice
	InvoiceStatusViewed InvoiceStatus = "viewed"
	// InvoiceStatusPaid indicates invoice is settled in full
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates the due date passed without full payment
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusCancelled indicates invoice was withdrawn and never counts towards revenue
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	// InvoiceStatusPartial indicates part of the invoice total has been received
	InvoiceStatusPartial InvoiceStatus = "partial"
)

// InvoiceStatuses lists every status in display order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusViewed,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
	InvoiceStatusPartial,
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	if !lo.Contains(InvoiceStatuses, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": InvoiceStatuses,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsCountedInRevenue reports whether the status contributes to tax and revenue totals
func (s InvoiceStatus) IsCountedInRevenue() bool {
	return s != InvoiceStatusCancelled
}

// IsAgingEligible reports whether an invoice in this status is an open receivable
func (s InvoiceStatus) IsAgingEligible() bool {
	return !lo.Contains([]InvoiceStatus{InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusDraft}, s)
}

// IsPayable reports whether the recipient can still pay the invoice
func (s InvoiceStatus) IsPayable() bool {
	return s != InvoiceStatusPaid && s != InvoiceStatusCancelled
}

// BadgeTone is the colour family used to render a status badge
type BadgeTone string

const (
	BadgeToneGreen       BadgeTone = "green"
	BadgeToneRed         BadgeTone = "red"
	BadgeToneBlue        BadgeTone = "blue"
	BadgeTonePurple      BadgeTone = "purple"
	BadgeToneGray        BadgeTone = "gray"
	BadgeToneNeutralGray BadgeTone = "neutral_gray"
	BadgeToneOrange      BadgeTone = "orange"
)

// StatusDisplay is the customer facing presentation of a status
type StatusDisplay struct {
	Label string    `json:"label"`
	Tone  BadgeTone `json:"tone"`
}

var statusDisplays = map[InvoiceStatus]StatusDisplay{
	InvoiceStatusPaid:      {Label: "Betaald", Tone: BadgeToneGreen},
	InvoiceStatusOverdue:   {Label: "Verlopen", Tone: BadgeToneRed},
	InvoiceStatusSent:      {Label: "Verstuurd", Tone: BadgeToneBlue},
	InvoiceStatusViewed:    {Label: "Bekeken", Tone: BadgeTonePurple},
	InvoiceStatusDraft:     {Label: "Concept", Tone: BadgeToneGray},
	InvoiceStatusCancelled: {Label: "Geannuleerd", Tone: BadgeToneNeutralGray},
	InvoiceStatusPartial:   {Label: "Deels betaald", Tone: BadgeToneOrange},
}

// Display returns the Dutch label and badge tone of the status.
// Unknown statuses render as a gray badge carrying the raw value.
func (s InvoiceStatus) Display() StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Tone: BadgeToneGray}
}
