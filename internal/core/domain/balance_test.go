package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name  string
		paid  string
		total string
		want  domain.PaymentStatus
	}{
		{"nothing paid", "0", "1000", domain.Unpaid},
		{"negative paid", "-5", "1000", domain.Unpaid},
		{"partially paid", "400", "1000", domain.PartiallyPaid},
		{"almost paid", "999.99", "1000", domain.PartiallyPaid},
		{"exactly paid", "1000", "1000", domain.Paid},
		{"overpaid data", "1200", "1000", domain.Paid},
		{"zero total zero paid", "0", "0", domain.Unpaid},
		{"zero total positive paid", "1", "0", domain.Paid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentStatus(dec(tt.paid), dec(tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalance_Apply(t *testing.T) {
	b := domain.NewBalance(dec("1000"))
	assert.Equal(t, domain.Unpaid, b.Status)

	next, err := b.Apply(dec("400"))
	require.NoError(t, err)
	assert.True(t, next.PaidAmount.Equal(dec("400")))
	assert.Equal(t, domain.PartiallyPaid, next.Status)
	assert.True(t, next.DueAmount().Equal(dec("600")))

	// Original balance is untouched.
	assert.True(t, b.PaidAmount.IsZero())
}

func TestBalance_Apply_RejectsNonPositive(t *testing.T) {
	b := domain.NewBalance(dec("1000"))

	_, err := b.Apply(decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = b.Apply(dec("-10"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBalance_Apply_RejectsOverpayment(t *testing.T) {
	b := domain.NewBalance(dec("1000"))
	b, err := b.Apply(dec("900"))
	require.NoError(t, err)

	rejected, err := b.Apply(dec("101"))
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
	// Rejection leaves the balance unchanged.
	assert.True(t, rejected.PaidAmount.Equal(dec("900")))

	accepted, err := b.Apply(dec("100"))
	require.NoError(t, err)
	assert.Equal(t, domain.Paid, accepted.Status)
}

func TestBalance_AdjustEntry(t *testing.T) {
	b := domain.NewBalance(dec("1000"))
	b, err := b.Apply(dec("400"))
	require.NoError(t, err)

	// Shrink the entry from 400 to 300.
	next, err := b.AdjustEntry(dec("400"), dec("300"))
	require.NoError(t, err)
	assert.True(t, next.PaidAmount.Equal(dec("300")))
	assert.Equal(t, domain.PartiallyPaid, next.Status)

	// Grow past total -> overpayment, unchanged result.
	_, err = b.AdjustEntry(dec("400"), dec("1001"))
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)

	_, err = b.AdjustEntry(dec("400"), decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBalance_RemoveEntry(t *testing.T) {
	b := domain.NewBalance(dec("1000"))
	b, err := b.Apply(dec("400"))
	require.NoError(t, err)

	next := b.RemoveEntry(dec("400"))
	assert.True(t, next.PaidAmount.IsZero())
	assert.Equal(t, domain.Unpaid, next.Status)

	// Removal is not clamped: inconsistent data stays visible.
	under := next.RemoveEntry(dec("50"))
	assert.True(t, under.PaidAmount.Equal(dec("-50")))
	assert.Equal(t, domain.Unpaid, under.Status)
}

// Walks the full lifecycle of one aggregate: apply, apply to full, edit down,
// delete, edit up to the limit, reject past it.
func TestBalance_Lifecycle(t *testing.T) {
	b := domain.NewBalance(dec("1000"))

	b, err := b.Apply(dec("400")) // entry E1
	require.NoError(t, err)
	assert.True(t, b.PaidAmount.Equal(dec("400")))
	assert.Equal(t, domain.PartiallyPaid, b.Status)

	b, err = b.Apply(dec("600")) // entry E2
	require.NoError(t, err)
	assert.True(t, b.PaidAmount.Equal(dec("1000")))
	assert.Equal(t, domain.Paid, b.Status)

	b, err = b.AdjustEntry(dec("400"), dec("300")) // E1: 400 -> 300
	require.NoError(t, err)
	assert.True(t, b.PaidAmount.Equal(dec("900")))
	assert.Equal(t, domain.PartiallyPaid, b.Status)

	b = b.RemoveEntry(dec("600")) // delete E2
	assert.True(t, b.PaidAmount.Equal(dec("300")))
	assert.Equal(t, domain.PartiallyPaid, b.Status)

	b, err = b.AdjustEntry(dec("300"), dec("1000")) // E1 -> full total
	require.NoError(t, err)
	assert.True(t, b.PaidAmount.Equal(dec("1000")))
	assert.Equal(t, domain.Paid, b.Status)

	_, err = b.AdjustEntry(dec("1000"), dec("1001"))
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
	assert.True(t, b.PaidAmount.Equal(dec("1000")))
	assert.Equal(t, domain.Paid, b.Status)
}

func TestUserTenantRole_Allows(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Allows(domain.RoleMember))
	assert.True(t, domain.RoleMember.Allows(domain.RoleReadOnly))
	assert.True(t, domain.RoleMember.Allows(domain.RoleMember))
	assert.False(t, domain.RoleReadOnly.Allows(domain.RoleMember))
	assert.False(t, domain.RoleRemoved.Allows(domain.RoleReadOnly))
}
