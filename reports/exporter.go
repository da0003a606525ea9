package reports

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"jewelai/analytics"
)

const (
	sheetSummary    = "Summary"
	sheetCategories = "Categories"
	sheetTrends     = "Market Trends"
)

// ViewSource provides the analytics views exported to the workbook.
type ViewSource interface {
	Views(startDate, endDate string) (analytics.Views, error)
}

// Exporter renders inventory analytics as an XLSX workbook.
type Exporter struct {
	views ViewSource
}

// NewExporter returns an exporter over the given views.
func NewExporter(views ViewSource) *Exporter {
	return &Exporter{views: views}
}

// FileName is the attachment name for a window.
func FileName(startDate, endDate string) string {
	if startDate == "" && endDate == "" {
		return "inventory_report.xlsx"
	}
	return fmt.Sprintf("inventory_report_%s_%s.xlsx", orAll(startDate), orAll(endDate))
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// InventoryReport builds the workbook for the window and returns its bytes.
func (e *Exporter) InventoryReport(startDate, endDate string) ([]byte, error) {
	v, err := e.views.Views(startDate, endDate)
	if err != nil {
		return nil, err
	}

	wb, err := Build(v, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	log.Printf("📄 [REPORT] Inventory workbook: %d categories, %d trend rows, %d bytes", len(v.Categories), len(v.Trends), buf.Len())
	return buf.Bytes(), nil
}

// Build lays the three views out on separate sheets. Money and averages are
// rounded to two decimals.
func Build(v analytics.Views, startDate, endDate string) (*excelize.File, error) {
	wb := excelize.NewFile()
	w := &writer{wb: wb}

	if err := wb.SetSheetName("Sheet1", sheetSummary); err != nil {
		wb.Close()
		return nil, err
	}
	for _, name := range []string{sheetCategories, sheetTrends} {
		if _, err := wb.NewSheet(name); err != nil {
			wb.Close()
			return nil, err
		}
	}
	header, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F3E5AB"}},
	})
	if err != nil {
		wb.Close()
		return nil, err
	}
	w.header = header

	source := "sales records"
	if v.Fallback {
		source = "precomputed turnover table"
	}
	w.rows(sheetSummary, []string{"Metric", "Value"}, [][]interface{}{
		{"Start date", orAll(startDate)},
		{"End date", orAll(endDate)},
		{"Source", source},
		{"Total stock value", money(v.KPI.TotalStockValue)},
		{"Total items", v.KPI.TotalItems},
		{"Ageing stock", v.KPI.AgeingStock},
		{"Predicted deadstock", v.KPI.PredictedDeadstock},
		{"Fast-moving items", v.KPI.FastMovingItems},
	})

	cats := make([][]interface{}, 0, len(v.Categories))
	for _, c := range v.Categories {
		cats = append(cats, []interface{}{c.Category, money(c.StockValue), c.ItemCount, money(c.AvgDaysToSell), money(c.RiskScore), c.Trend})
	}
	w.rows(sheetCategories, []string{"Category", "Stock Value", "Items", "Avg Days To Sell", "Risk Score", "Trend"}, cats)

	trends := make([][]interface{}, 0, len(v.Trends))
	for _, t := range v.Trends {
		trends = append(trends, []interface{}{t.Category, money(t.TotalSales), money(t.AvgSales), money(t.Risk), money(t.TurnoverDays)})
	}
	w.rows(sheetTrends, []string{"Category", "Total Sales", "Avg Sales", "Risk", "Turnover Days"}, trends)

	if w.err != nil {
		wb.Close()
		return nil, w.err
	}
	wb.SetActiveSheet(0)
	return wb, nil
}

func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// writer keeps the first error so sheet layout reads top to bottom.
type writer struct {
	wb     *excelize.File
	header int
	err    error
}

func (w *writer) rows(sheet string, header []string, rows [][]interface{}) {
	if w.err != nil {
		return
	}
	if len(header) == 0 {
		w.err = errors.New("empty header")
		return
	}
	for i, h := range header {
		w.set(sheet, i+1, 1, h)
	}
	for r, row := range rows {
		for c, val := range row {
			w.set(sheet, c+1, r+2, val)
		}
	}
	if w.err != nil {
		return
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		w.err = err
		return
	}
	if err := w.wb.SetCellStyle(sheet, "A1", last+"1", w.header); err != nil {
		w.err = err
		return
	}
	w.err = w.wb.SetColWidth(sheet, "A", last, 20)
}

func (w *writer) set(sheet string, col, row int, val interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.wb.SetCellValue(sheet, cell, val)
}
