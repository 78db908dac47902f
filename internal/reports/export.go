// Package reports renders downloadable artifacts for payment data: PDF
// receipts for single entries and XLSX registers for whole aggregates.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// ReceiptData carries everything a payment receipt shows. Title and
// PartyLabel/PartyName differ between sale receipts (customer) and expense
// receipts (vendor).
type ReceiptData struct {
	Title      string
	TenantName string
	PartyLabel string
	PartyName  string
	Reference  string // flat number or bill number
	Entry      domain.PaymentEntry
	Balance    domain.Balance
}

// RegisterData carries an aggregate's payment history for the XLSX register.
type RegisterData struct {
	Title      string
	TenantName string
	PartyLabel string
	PartyName  string
	Reference  string
	Balance    domain.Balance
	Entries    []domain.PaymentEntry
}

// BuildReceiptPDF renders a PDF receipt for one payment entry.
func BuildReceiptPDF(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, data.Title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Issued by: %s", data.TenantName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("%s: %s", data.PartyLabel, data.PartyName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Against: %s", data.Reference))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Receipt No: %s", data.Entry.PaymentID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Payment Date: %s", data.Entry.PaymentDate.Format("2006-01-02")))
	pdf.Ln(5)
	if data.Entry.Reference != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Payment Reference: %s", data.Entry.Reference))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Amount Received: %s", data.Entry.Amount.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Amount: %s", data.Balance.TotalAmount.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Paid To Date: %s", data.Balance.PaidAmount.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Balance Due: %s", data.Balance.DueAmount().StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", data.Balance.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRegisterXLSX renders an XLSX register of all payment entries of an
// aggregate together with its balance summary.
func BuildRegisterXLSX(data RegisterData) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	paymentsSheet := "payments"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", data.Title)
	_ = f.SetCellValue(summarySheet, "A3", "Tenant")
	_ = f.SetCellValue(summarySheet, "B3", data.TenantName)
	_ = f.SetCellValue(summarySheet, "A4", data.PartyLabel)
	_ = f.SetCellValue(summarySheet, "B4", data.PartyName)
	_ = f.SetCellValue(summarySheet, "A5", "Against")
	_ = f.SetCellValue(summarySheet, "B5", data.Reference)
	_ = f.SetCellValue(summarySheet, "A6", "Total Amount")
	_ = f.SetCellValue(summarySheet, "B6", data.Balance.TotalAmount.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A7", "Paid Amount")
	_ = f.SetCellValue(summarySheet, "B7", data.Balance.PaidAmount.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A8", "Due Amount")
	_ = f.SetCellValue(summarySheet, "B8", data.Balance.DueAmount().StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A9", "Status")
	_ = f.SetCellValue(summarySheet, "B9", string(data.Balance.Status))

	_ = f.SetCellValue(paymentsSheet, "A1", "Payment ID")
	_ = f.SetCellValue(paymentsSheet, "B1", "Payment Date")
	_ = f.SetCellValue(paymentsSheet, "C1", "Amount")
	_ = f.SetCellValue(paymentsSheet, "D1", "Reference")
	_ = f.SetCellValue(paymentsSheet, "E1", "Note")
	_ = f.SetCellValue(paymentsSheet, "F1", "Recorded At")
	for i, entry := range data.Entries {
		row := i + 2
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("A%d", row), entry.PaymentID)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("B%d", row), entry.PaymentDate.Format("2006-01-02"))
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("C%d", row), entry.Amount.StringFixed(2))
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("D%d", row), entry.Reference)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("E%d", row), entry.Note)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("F%d", row), entry.CreatedAt.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
