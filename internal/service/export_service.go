package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

// --- Interface ---

// ExportService renders xlsx reports. Precision matches the billing
// formatter: 3 decimal places for weights, 2 for currency.
type ExportService interface {
	ExportSales(ctx context.Context, billingType string, filter SaleFilter) ([]byte, string, error)
	ExportCustomers(ctx context.Context, scope string) ([]byte, string, error)
}

type exportService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

func NewExportService(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository) ExportService {
	return &exportService{saleRepo: saleRepo, customerRepo: customerRepo}
}

// --- Implementation ---

var salesHeader = []string{
	"Sale No", "Date", "Customer", "Items",
	"Net Weight (g)", "Silver Weight (g)", "Labor", "Subtotal",
	"CGST", "SGST", "Total Amount",
	"Paid Amount", "Paid Silver (g)", "Balance",
}

func (s *exportService) ExportSales(ctx context.Context, billingType string, filter SaleFilter) ([]byte, string, error) {
	repoFilter := repository.SaleListFilter{
		BillingType: billingType,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
	}

	sales, err := s.saleRepo.ListForExport(ctx, repoFilter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch sales: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for col, title := range salesHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		_ = f.SetCellValue(sheet, cell, title)
	}

	for i, sale := range sales {
		customerName := ""
		if sale.Customer != nil {
			customerName = sale.Customer.Name
		}
		values := []interface{}{
			sale.SaleNo,
			sale.CreatedAt.Format(dateLayout),
			customerName,
			len(sale.Items),
			sale.TotalNetWeight.StringFixed(3),
			sale.TotalSilverWeight.StringFixed(3),
			sale.TotalLabor.StringFixed(2),
			sale.Subtotal.StringFixed(2),
			sale.CGST.StringFixed(2),
			sale.SGST.StringFixed(2),
			sale.TotalAmount.StringFixed(2),
			sale.PaidAmount.StringFixed(2),
			sale.PaidSilver.StringFixed(3),
			sale.BalanceAmount.StringFixed(2),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	tag := "regular"
	if billingType == model.BillingWholesale {
		tag = "wholesale"
	}
	filename := fmt.Sprintf("%s-sales-%s.xlsx", tag, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

var customersHeader = []string{
	"Name", "Phone", "Address", "GSTIN",
	"Balance Amount", "Balance Silver (g)", "Since",
}

func (s *exportService) ExportCustomers(ctx context.Context, scope string) ([]byte, string, error) {
	if !validScope(scope) {
		return nil, "", fmt.Errorf("invalid scope %q", scope)
	}

	// One page fetch per chunk; the books are small enough that the
	// MaxLimit ceiling per page keeps memory flat.
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for col, title := range customersHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		_ = f.SetCellValue(sheet, cell, title)
	}

	row := 2
	for page := 1; ; page++ {
		customers, _, err := s.customerRepo.List(ctx, repository.CustomerListFilter{
			Scope: scope,
			Page:  page,
			Limit: 100,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch customers: %w", err)
		}
		if len(customers) == 0 {
			break
		}

		for _, c := range customers {
			values := []interface{}{
				c.Name,
				c.Phone,
				c.Address,
				c.GSTIN,
				c.BalanceAmount.StringFixed(2),
				c.BalanceSilver.StringFixed(3),
				c.CreatedAt.Format(dateLayout),
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, "", err
				}
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if len(customers) < 100 {
			break
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("%s-customers-%s.xlsx", scopeTag(scope), time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func scopeTag(scope string) string {
	if scope == model.ScopeWholesale {
		return "wholesale"
	}
	return "regular"
}
