package mapping

import (
	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/models"
)

// ToModelPaymentEntry converts a domain PaymentEntry to a model PaymentEntry.
// Kind is intentionally not persisted on the row; the table the row lives in
// carries that information.
func ToModelPaymentEntry(d domain.PaymentEntry) models.PaymentEntry {
	return models.PaymentEntry{
		PaymentID:   d.PaymentID,
		ParentID:    d.ParentID,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		Reference:   d.Reference,
		Note:        d.Note,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentEntry converts a model PaymentEntry to a domain PaymentEntry.
func ToDomainPaymentEntry(m models.PaymentEntry, kind domain.AggregateKind) domain.PaymentEntry {
	return domain.PaymentEntry{
		PaymentID:   m.PaymentID,
		ParentID:    m.ParentID,
		Kind:        kind,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Reference:   m.Reference,
		Note:        m.Note,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentEntrySlice converts a slice of model PaymentEntries to domain PaymentEntries.
func ToDomainPaymentEntrySlice(ms []models.PaymentEntry, kind domain.AggregateKind) []domain.PaymentEntry {
	ds := make([]domain.PaymentEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentEntry(m, kind)
	}
	return ds
}
