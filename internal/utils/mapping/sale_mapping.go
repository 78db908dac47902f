package mapping

import (
	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/models"
)

// ToModelFlatSale converts a domain FlatSale to a model FlatSale
func ToModelFlatSale(d domain.FlatSale) models.FlatSale {
	return models.FlatSale{
		SaleID:        d.SaleID,
		TenantID:      d.TenantID,
		ProjectID:     d.ProjectID,
		CustomerID:    d.CustomerID,
		FlatNumber:    d.FlatNumber,
		SaleDate:      d.SaleDate,
		Note:          d.Note,
		TotalAmount:   d.TotalAmount,
		PaidAmount:    d.PaidAmount,
		PaymentStatus: string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFlatSale converts a model FlatSale to a domain FlatSale
func ToDomainFlatSale(m models.FlatSale) domain.FlatSale {
	return domain.FlatSale{
		SaleID:     m.SaleID,
		TenantID:   m.TenantID,
		ProjectID:  m.ProjectID,
		CustomerID: m.CustomerID,
		FlatNumber: m.FlatNumber,
		SaleDate:   m.SaleDate,
		Note:       m.Note,
		Balance: domain.Balance{
			TotalAmount: m.TotalAmount,
			PaidAmount:  m.PaidAmount,
			Status:      domain.PaymentStatus(m.PaymentStatus),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFlatSaleSlice converts a slice of model FlatSales to domain FlatSales
func ToDomainFlatSaleSlice(ms []models.FlatSale) []domain.FlatSale {
	ds := make([]domain.FlatSale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFlatSale(m)
	}
	return ds
}
