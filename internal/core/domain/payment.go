package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEntry is one payment attributed to a balance-carrying aggregate
// (a flat sale or an expense bill). Entries are always fully formed in the
// store; the only field with financial meaning is Amount.
type PaymentEntry struct {
	PaymentID   string          `json:"paymentID"` // Primary key (UUID), generated before commit
	ParentID    string          `json:"parentID"`  // FK -> owning aggregate
	Kind        AggregateKind   `json:"kind"`      // Which aggregate table the parent lives in
	Amount      decimal.Decimal `json:"amount"`    // Positive
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"` // Cheque/UTR number etc., descriptive only
	Note        string          `json:"note"`
	AuditFields
}
