package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"jewelai/inference"
	"jewelai/models"
)

// ErrStartupDataMissing is returned when a required data file is absent or unreadable.
var ErrStartupDataMissing = errors.New("startup data missing")

// Snapshot is everything loaded at startup.
type Snapshot struct {
	Sales       []models.SalesRecord
	SalesLoaded bool
	Turnover    []models.TurnoverRow
	Evaluations []models.PredictionEvaluation
	Metrics     *models.EnsembleMetrics
	Artifact    *inference.Artifact
}

// Store is the read-only dataset shared by every request. It is never
// modified after New returns, so concurrent readers need no locking.
type Store struct {
	snap Snapshot
}

// New freezes a snapshot into a Store.
func New(snap Snapshot) *Store {
	return &Store{snap: snap}
}

// Sales returns the raw sales records and whether a raw dataset was loaded at all.
func (s *Store) Sales() ([]models.SalesRecord, bool) {
	return s.snap.Sales, s.snap.SalesLoaded
}

func (s *Store) Turnover() []models.TurnoverRow {
	return s.snap.Turnover
}

func (s *Store) Evaluations() []models.PredictionEvaluation {
	return s.snap.Evaluations
}

func (s *Store) Metrics() *models.EnsembleMetrics {
	return s.snap.Metrics
}

// Artifact returns the ensemble artifact, or nil when inference is disabled.
func (s *Store) Artifact() *inference.Artifact {
	return s.snap.Artifact
}

// DataLoaded reports whether the precomputed turnover table is present.
func (s *Store) DataLoaded() bool {
	return s.snap.Turnover != nil
}

// SalesLoader returns the raw sales records. loaded is false when no raw
// dataset exists; analytics then runs on the precomputed table only.
type SalesLoader func(ctx context.Context) (records []models.SalesRecord, loaded bool, err error)

// CSVSalesLoader reads raw sales from a CSV file. A missing file is not an error.
func CSVSalesLoader(path string) SalesLoader {
	return func(ctx context.Context) ([]models.SalesRecord, bool, error) {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		defer f.Close()

		records, err := ReadSalesCSV(f)
		if err != nil {
			return nil, false, err
		}
		return records, true, nil
	}
}

// Paths locates the startup files.
type Paths struct {
	Turnover   string
	Evaluation string
	Metrics    string
	Model      string
}

// Load runs the startup sequence: raw sales, turnover table, evaluation table,
// metrics, model artifact. Failures in required files return
// ErrStartupDataMissing; a missing or broken model only disables inference.
func Load(ctx context.Context, sales SalesLoader, paths Paths) (*Store, error) {
	var snap Snapshot
	var err error

	log.Println("📦 [DATASET] Loading data files...")

	snap.Sales, snap.SalesLoaded, err = sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: sales records: %v", ErrStartupDataMissing, err)
	}
	if snap.SalesLoaded {
		log.Printf("✅ [DATASET] Sales data loaded: %d records", len(snap.Sales))
	} else {
		log.Println("⚠️  [DATASET] Sales data not found, date filtering will be limited")
	}

	if snap.Turnover, err = readFile(paths.Turnover, ReadTurnoverCSV); err != nil {
		return nil, err
	}
	if snap.Evaluations, err = readFile(paths.Evaluation, ReadEvaluationCSV); err != nil {
		return nil, err
	}
	if snap.Metrics, err = readFile(paths.Metrics, decodeMetrics); err != nil {
		return nil, err
	}

	if art, err := inference.LoadArtifact(paths.Model); err != nil {
		log.Printf("⚠️  [DATASET] Model loading failed (predictions disabled): %v", err)
	} else {
		snap.Artifact = art
		log.Printf("✅ [DATASET] Ensemble model loaded: %v", art.ModelNames())
	}

	log.Printf("✅ [DATASET] Data loaded: %d inventory items, %d evaluation rows", len(snap.Turnover), len(snap.Evaluations))
	return New(snap), nil
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrStartupDataMissing, err)
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrStartupDataMissing, path, err)
	}
	return v, nil
}

func decodeMetrics(r io.Reader) (*models.EnsembleMetrics, error) {
	var m models.EnsembleMetrics
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
