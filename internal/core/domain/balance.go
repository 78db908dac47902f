package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/apperrors"
)

// PaymentStatus is the derived payment state of a balance-carrying aggregate.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "UNPAID"
	PartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	Paid          PaymentStatus = "PAID"
)

// AggregateKind identifies which aggregate type a payment entry belongs to.
type AggregateKind string

const (
	KindFlatSale    AggregateKind = "FLAT_SALE"
	KindExpenseBill AggregateKind = "EXPENSE_BILL"
)

// IsValid checks if the kind is a known aggregate kind.
func (k AggregateKind) IsValid() bool {
	return k == KindFlatSale || k == KindExpenseBill
}

// DerivePaymentStatus computes the status of an aggregate from its paid and
// total amounts. Status is never stored except as the output of this function:
// paid <= 0 is Unpaid (even when total is 0), paid >= total is Paid, anything
// in between is PartiallyPaid.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	if paid.LessThanOrEqual(decimal.Zero) {
		return Unpaid
	}
	if paid.GreaterThanOrEqual(total) {
		return Paid
	}
	return PartiallyPaid
}

// Balance is the denormalized running state carried by an aggregate: the
// contractual total, the amount paid so far and the status derived from them.
// The store invariant is PaidAmount == sum of the aggregate's payment entries
// at every commit point.
type Balance struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Status      PaymentStatus   `json:"status"`
}

// NewBalance creates the balance of a freshly created aggregate.
func NewBalance(total decimal.Decimal) Balance {
	return Balance{
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Status:      DerivePaymentStatus(decimal.Zero, total),
	}
}

// Apply returns the balance after adding a new payment of the given amount.
// Rejects non-positive amounts and amounts that would push PaidAmount above
// TotalAmount.
func (b Balance) Apply(amount decimal.Decimal) (Balance, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return b, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	newPaid := b.PaidAmount.Add(amount)
	if newPaid.GreaterThan(b.TotalAmount) {
		return b, fmt.Errorf("%w: paid %s would exceed total %s", apperrors.ErrOverpayment, newPaid.String(), b.TotalAmount.String())
	}
	return b.with(newPaid), nil
}

// AdjustEntry returns the balance after an existing payment changes from
// oldAmount to newAmount. oldAmount is the amount currently persisted for the
// entry, read inside the same transaction that applies the adjustment.
func (b Balance) AdjustEntry(oldAmount, newAmount decimal.Decimal) (Balance, error) {
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return b, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, newAmount.String())
	}
	newPaid := b.PaidAmount.Sub(oldAmount).Add(newAmount)
	if newPaid.GreaterThan(b.TotalAmount) {
		return b, fmt.Errorf("%w: paid %s would exceed total %s", apperrors.ErrOverpayment, newPaid.String(), b.TotalAmount.String())
	}
	return b.with(newPaid), nil
}

// RemoveEntry returns the balance after a payment of the given amount is
// deleted. The result is not clamped: a negative paid amount means the data
// was already inconsistent and should stay visible as such.
func (b Balance) RemoveEntry(amount decimal.Decimal) Balance {
	return b.with(b.PaidAmount.Sub(amount))
}

// DueAmount is the remaining amount owed on the aggregate.
func (b Balance) DueAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

func (b Balance) with(newPaid decimal.Decimal) Balance {
	return Balance{
		TotalAmount: b.TotalAmount,
		PaidAmount:  newPaid,
		Status:      DerivePaymentStatus(newPaid, b.TotalAmount),
	}
}
