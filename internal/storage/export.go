package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"configureflow/internal/pricing"
)

// ExportOrderToExcel writes an itemized quote sheet for an order and returns
// the file path. Attached to admin notifications.
func ExportOrderToExcel(order Order, breakdown pricing.Breakdown) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quote"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Order ID")
	f.SetCellValue(sheet, "B1", order.ID)
	f.SetCellValue(sheet, "A2", "Product")
	f.SetCellValue(sheet, "B2", order.ProductID)
	f.SetCellValue(sheet, "A3", "Created At")
	f.SetCellValue(sheet, "B3", order.CreatedAt.Format("2006-01-02 15:04"))
	f.SetCellValue(sheet, "A4", "Quantity")
	f.SetCellValue(sheet, "B4", order.Quantity)

	row := 6
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Base Price")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(breakdown.BasePrice))
	row++

	for _, mod := range breakdown.OptionModifiers {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Option: "+mod.OptionID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(mod.Amount))
		row++
	}
	for _, cost := range breakdown.AddOnCosts {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Add-on: "+cost.AddOnID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(cost.Amount))
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Subtotal")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(breakdown.Subtotal))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Quantity Discount")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(breakdown.QuantityDiscount))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pricing.RoundToCents(breakdown.Total))

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("A%d", row), style)

	f.SetActiveSheet(index)

	filename := fmt.Sprintf("order_%d_%s.xlsx",
		order.ID,
		order.CreatedAt.Format("20060102_1504"))
	path := filepath.Join("reports", filename)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return path, nil
}
