package database

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelai/analytics"
	"jewelai/dataset"
	"jewelai/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Connect sets up the database connection pool and checks it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	log.Println("✅ [DATABASE] Successfully connected to the database")
	return pool, nil
}

// Close closes the database connection pool.
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		log.Println("Database connection pool closed")
	}
}

// Querier is the subset of pgxpool.Pool used to read sales.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SalesQuery returns the select statement for table, or an error when the
// name is not a plain (optionally schema-qualified) identifier.
func SalesQuery(table string) (string, error) {
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("invalid sales table name %q", table)
	}
	return fmt.Sprintf(
		`SELECT label_no, category, value, voucher_date FROM %s ORDER BY voucher_date, label_no`, table), nil
}

// SalesLoader reads raw sales records from table. An empty table is still a
// loaded dataset; only a query failure is an error.
func SalesLoader(db Querier, table string) dataset.SalesLoader {
	return func(ctx context.Context) ([]models.SalesRecord, bool, error) {
		query, err := SalesQuery(table)
		if err != nil {
			return nil, false, err
		}
		rows, err := db.Query(ctx, query)
		if err != nil {
			return nil, false, fmt.Errorf("query %s: %w", table, err)
		}
		defer rows.Close()

		records := make([]models.SalesRecord, 0)
		for rows.Next() {
			var (
				label, category string
				value           float64
				voucherDate     time.Time
			)
			if err := rows.Scan(&label, &category, &value, &voucherDate); err != nil {
				return nil, false, fmt.Errorf("scan %s row %d: %w", table, len(records)+1, err)
			}
			records = append(records, models.SalesRecord{
				LabelNo:     label,
				Category:    category,
				Value:       value,
				VoucherDate: analytics.DateOnly(voucherDate),
			})
		}
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("read %s: %w", table, err)
		}
		log.Printf("📦 [DATABASE] Loaded %d sales records from %s", len(records), table)
		return records, true, nil
	}
}
