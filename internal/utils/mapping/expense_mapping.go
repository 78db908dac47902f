package mapping

import (
	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/models"
)

// ToModelExpenseBill converts a domain ExpenseBill to a model ExpenseBill
func ToModelExpenseBill(d domain.ExpenseBill) models.ExpenseBill {
	return models.ExpenseBill{
		BillID:        d.BillID,
		TenantID:      d.TenantID,
		ProjectID:     d.ProjectID,
		VendorName:    d.VendorName,
		BillNumber:    d.BillNumber,
		BillDate:      d.BillDate,
		Category:      d.Category,
		Note:          d.Note,
		TotalAmount:   d.TotalAmount,
		PaidAmount:    d.PaidAmount,
		PaymentStatus: string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseBill converts a model ExpenseBill to a domain ExpenseBill
func ToDomainExpenseBill(m models.ExpenseBill) domain.ExpenseBill {
	return domain.ExpenseBill{
		BillID:     m.BillID,
		TenantID:   m.TenantID,
		ProjectID:  m.ProjectID,
		VendorName: m.VendorName,
		BillNumber: m.BillNumber,
		BillDate:   m.BillDate,
		Category:   m.Category,
		Note:       m.Note,
		Balance: domain.Balance{
			TotalAmount: m.TotalAmount,
			PaidAmount:  m.PaidAmount,
			Status:      domain.PaymentStatus(m.PaymentStatus),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseBillSlice converts a slice of model ExpenseBills to domain ExpenseBills
func ToDomainExpenseBillSlice(ms []models.ExpenseBill) []domain.ExpenseBill {
	ds := make([]domain.ExpenseBill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseBill(m)
	}
	return ds
}
