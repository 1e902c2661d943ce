package services

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/datatable/internal/domain/models"
	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/nexuscrm/datatable/pkg/query"
	"github.com/nexuscrm/datatable/pkg/search"
)

const exportFileExt = ".csv"

// mirrorUploadTimeout bounds the copy of a finished export to the mirror
const mirrorUploadTimeout = 5 * time.Minute

// ExportService writes every row matching a search to a CSV file
type ExportService struct {
	registry *tables.Registry
	dialect  query.Dialect
	repo     TableReader
	dir      string
	timeout  time.Duration
	mirror   ExportMirror // optional
	newName  func() string

	uploadTimeout time.Duration
}

// NewExportService creates a new ExportService writing into dir
func NewExportService(registry *tables.Registry, dialect query.Dialect, repo TableReader, dir string, timeout time.Duration, mirror ExportMirror) *ExportService {
	return &ExportService{
		registry: registry,
		dialect:  dialect,
		repo:     repo,
		dir:      dir,
		timeout:  timeout,
		mirror:   mirror,
		newName:  func() string { return uuid.New().String() },

		uploadTimeout: mirrorUploadTimeout,
	}
}

// Dir returns the directory exports are written to
func (s *ExportService) Dir() string {
	return s.dir
}

// Export runs the filtered (or unfiltered) SELECT for the table and streams
// the rows into <dir>/<uuid>.csv: a header row, then one line per record.
// Elapsed covers query execution through flush and close of the file.
// A failed export leaves no file behind.
func (s *ExportService) Export(ctx context.Context, req models.ExportRequest) (*models.ExportResult, error) {
	d, err := s.registry.Lookup(req.TableName)
	if err != nil {
		return nil, err
	}

	mode, err := search.ParseMatchMode(req.PatternMatch)
	if err != nil {
		return nil, err
	}

	expr, err := search.Parse(req.SearchString)
	if err != nil {
		return nil, err
	}

	predicate, err := query.PredicateFor(s.dialect, d.ColumnNames(), expr, mode)
	if err != nil {
		return nil, err
	}

	stmt, err := query.AssembleExport(s.dialect, d.BackendTable, d.ColumnNames(), predicate)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.NewIOError(s.dir, err)
	}
	path := filepath.Join(s.dir, s.newName()+exportFileExt)
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIOError(path, err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	rows, err := s.writeCSV(queryCtx, file, path, stmt, d)
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = errors.NewIOError(path, closeErr)
	}
	elapsed := time.Since(start)

	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("⚠️  Failed to remove partial export %s: %v", path, rmErr)
		}
		log.Printf("❌ Export of %s failed: %v", d.ShortName, err)
		return nil, err
	}

	log.Printf("📤 Exported %d rows from %s to %s in %.3fs", rows, d.ShortName, path, elapsed.Seconds())

	if s.mirror != nil && s.mirror.Enabled() {
		s.upload(ctx, path)
	}

	return &models.ExportResult{FilePath: path, Rows: rows, Elapsed: elapsed}, nil
}

// upload copies the export to the mirror under its own deadline, so a long
// export does not eat into the upload's time
func (s *ExportService) upload(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if err := s.mirror.Upload(ctx, path); err != nil {
		log.Printf("⚠️  Failed to mirror export %s: %v", path, err)
	}
}

func (s *ExportService) writeCSV(ctx context.Context, file *os.File, path string, stmt query.QueryResult, d *tables.TableDescriptor) (int, error) {
	w := csv.NewWriter(file)
	if err := w.Write(d.ColumnNames()); err != nil {
		return 0, errors.NewIOError(path, err)
	}

	rows, err := s.repo.Stream(ctx, s.repo.GetExecutor(), stmt, d, func(rec tables.Record) error {
		if err := w.Write(rec.Strings()); err != nil {
			return errors.NewIOError(path, err)
		}
		return nil
	})
	if err != nil {
		return rows, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, errors.NewIOError(path, err)
	}
	return rows, nil
}
