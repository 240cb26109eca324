// Package xlsx renders profitability reports as Excel workbooks.
package xlsx

import (
	"io"
	"time"

	"atelier/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetOrders    = "Orders"
	SheetByProduct = "By-Product"
	SheetByPage    = "By-Page"
	SheetMovements = "Movements"

	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Exporter writes one sheet per report section. Money cells are numbers
// rounded to two places so the workbook can be summed directly.
type Exporter struct{}

func NewExporter() Exporter {
	return Exporter{}
}

func (Exporter) ContentType() string {
	return contentType
}

func (e Exporter) Export(w io.Writer, report services.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	writers := []struct {
		sheet string
		rows  [][]any
	}{
		{SheetSummary, summaryRows(report)},
		{SheetOrders, orderRows(report.Orders)},
		{SheetByProduct, productRows(report.ByProduct)},
		{SheetByPage, pageRows(report.ByPage)},
		{SheetMovements, movementRows(report.Movements)},
	}

	for _, sheet := range writers {
		if sheet.sheet != SheetSummary {
			if _, err := f.NewSheet(sheet.sheet); err != nil {
				return err
			}
		}
		if err := writeRows(f, sheet.sheet, sheet.rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(r services.Report) [][]any {
	s := r.Summary
	return [][]any{
		{"Metric", "Value"},
		{"From", dateOrOpen(r.Params.From)},
		{"To", dateOrOpen(r.Params.To)},
		{"Page", r.Params.Page},
		{"Revenue", money(s.Revenue)},
		{"COGS", money(s.COGS)},
		{"Shipping", money(s.ShippingTotal)},
		{"Ads", money(s.AdsCost)},
		{"Other costs", money(s.OtherCosts)},
		{"Net profit", money(s.NetProfit)},
		{"Delivered orders", s.DeliveredCount},
		{"Returned orders", s.ReturnedCount},
		{"Return rate", ratio(s.ReturnRate)},
		{"Pending amount (not in profit)", money(s.PendingAmount)},
		{"Pending orders", s.PendingCount},
	}
}

func orderRows(orders []services.OrderRow) [][]any {
	rows := [][]any{{"Order", "Status", "Page", "Created", "Price", "Pieces", "COGS", "Shipping", "Margin", "Unresolved items"}}
	for _, o := range orders {
		rows = append(rows, []any{
			o.OrderID,
			o.Status.String(),
			o.Page,
			o.CreatedAt.UTC().Format(time.DateTime),
			money(o.Price),
			o.Pieces,
			money(o.COGS),
			money(o.ShippingFee),
			money(o.Margin),
			o.Unresolved,
		})
	}
	return rows
}

func productRows(products []services.ProductRow) [][]any {
	rows := [][]any{{
		"Code", "Name", "Ordered", "Delivered", "Returned", "Pending",
		"Revenue", "COGS", "Pending estimate", "Delivery rate", "Return rate", "Unresolved",
	}}
	for _, p := range products {
		rows = append(rows, []any{
			p.Code,
			p.Name,
			p.OrderedPieces,
			p.DeliveredPieces,
			p.ReturnedPieces,
			p.PendingPieces,
			money(p.Revenue),
			money(p.COGS),
			money(p.PendingEstimate),
			ratio(p.DeliveryRate),
			ratio(p.ReturnRate),
			p.Unresolved,
		})
	}
	return rows
}

func pageRows(pages []services.PageRow) [][]any {
	rows := [][]any{{"Page", "Revenue", "COGS", "Shipping", "Ads share", "Net profit", "Delivered", "Returned", "Pending amount"}}
	for _, p := range pages {
		rows = append(rows, []any{
			p.Page,
			money(p.Revenue),
			money(p.COGS),
			money(p.ShippingTotal),
			money(p.AdsShare),
			money(p.NetProfit),
			p.DeliveredCount,
			p.ReturnedCount,
			money(p.PendingAmount),
		})
	}
	return rows
}

func movementRows(movements []services.MovementRow) [][]any {
	rows := [][]any{{"ID", "At", "Code", "Name", "Delta", "Type", "Ref", "Notes"}}
	for _, m := range movements {
		rows = append(rows, []any{
			m.ID,
			m.At.UTC().Format(time.DateTime),
			m.Code,
			m.Name,
			m.Delta,
			m.Type.String(),
			m.Ref,
			m.Notes,
		})
	}
	return rows
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func ratio(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}

func dateOrOpen(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.UTC().Format(time.DateOnly)
}
