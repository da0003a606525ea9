package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"jewelai/models"
)

// csvRow gives by-name access to one CSV record.
type csvRow struct {
	line   int
	index  map[string]int
	fields []string
}

func (r csvRow) str(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// float parses a numeric column. Blank cells read as zero.
func (r csvRow) float(name string) (float64, error) {
	raw := r.str(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %q is not a number", r.line, name, raw)
	}
	return v, nil
}

func (r csvRow) date(name string) (time.Time, error) {
	raw := r.str(name)
	t, err := parseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("line %d: column %s: %q is not a date", r.line, name, raw)
	}
	return t, nil
}

// readCSV walks a headered CSV, failing if any required column is absent.
func readCSV(src io.Reader, required []string, fn func(csvRow) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV headers: %w", err)
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing required column %q", col)
		}
	}

	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(csvRow{line: line, index: index, fields: fields}); err != nil {
			return err
		}
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseDate accepts the date shapes seen in exported sales files and keeps
// only the calendar date.
func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ReadSalesCSV parses raw sales records. Extra columns are ignored.
func ReadSalesCSV(src io.Reader) ([]models.SalesRecord, error) {
	records := make([]models.SalesRecord, 0)
	err := readCSV(src, []string{"label_no", "category", "value", "voucher_date"}, func(row csvRow) error {
		value, err := row.float("value")
		if err != nil {
			return err
		}
		date, err := row.date("voucher_date")
		if err != nil {
			return err
		}
		records = append(records, models.SalesRecord{
			LabelNo:     row.str("label_no"),
			Category:    row.str("category"),
			Value:       value,
			VoucherDate: date,
		})
		return nil
	})
	return records, err
}

// ReadTurnoverCSV parses the precomputed inventory turnover table.
func ReadTurnoverCSV(src io.Reader) ([]models.TurnoverRow, error) {
	rows := make([]models.TurnoverRow, 0)
	required := []string{"label_no", "category", "predicted_potential_sales", "days_to_sell", "inventory_risk_score"}
	err := readCSV(src, required, func(row csvRow) error {
		var t models.TurnoverRow
		var err error
		if t.PredictedPotentialSales, err = row.float("predicted_potential_sales"); err != nil {
			return err
		}
		if t.DaysToSell, err = row.float("days_to_sell"); err != nil {
			return err
		}
		if t.InventoryRiskScore, err = row.float("inventory_risk_score"); err != nil {
			return err
		}
		t.LabelNo = row.str("label_no")
		t.Category = row.str("category")
		t.TurnoverCategory = row.str("turnover_category")
		rows = append(rows, t)
		return nil
	})
	return rows, err
}

// ReadEvaluationCSV parses the offline actual-vs-predicted table.
func ReadEvaluationCSV(src io.Reader) ([]models.PredictionEvaluation, error) {
	rows := make([]models.PredictionEvaluation, 0)
	err := readCSV(src, []string{"actual_sales", "ensemble_prediction"}, func(row csvRow) error {
		actual, err := row.float("actual_sales")
		if err != nil {
			return err
		}
		predicted, err := row.float("ensemble_prediction")
		if err != nil {
			return err
		}
		rows = append(rows, models.PredictionEvaluation{
			ActualSales:        actual,
			EnsemblePrediction: predicted,
			ProductCategory:    row.str("product_category"),
		})
		return nil
	})
	return rows, err
}
