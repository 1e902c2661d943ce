package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/nexuscrm/datatable/internal/domain/models"
	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/internal/infrastructure/persistence"
	"github.com/nexuscrm/datatable/pkg/query"
	"github.com/nexuscrm/datatable/pkg/search"
)

// PageService answers paginated, searchable, sortable table requests
type PageService struct {
	registry *tables.Registry
	dialect  query.Dialect
	repo     TableReader
	snapshot Snapshotter // nil unless snapshot reads are enabled
	timeout  time.Duration
}

// NewPageService creates a new PageService. Pass a nil snapshotter to run
// the count and data queries independently.
func NewPageService(registry *tables.Registry, dialect query.Dialect, repo TableReader, snapshot Snapshotter, timeout time.Duration) *PageService {
	return &PageService{
		registry: registry,
		dialect:  dialect,
		repo:     repo,
		snapshot: snapshot,
		timeout:  timeout,
	}
}

// GetPage validates the request, builds one predicate and derives the data
// and count queries from it. Either both queries succeed or the page fails.
func (s *PageService) GetPage(ctx context.Context, req models.PageRequest) (*models.PageResponse, error) {
	d, err := s.registry.Lookup(req.Table)
	if err != nil {
		return nil, err
	}

	mode := search.MatchModeFromExactFlag(req.ExactSearch)

	sortColumn, err := d.SortColumn(req.SortColumnIndex)
	if err != nil {
		return nil, err
	}

	expr, err := search.Parse(req.Search)
	if err != nil {
		return nil, err
	}

	predicate, err := query.PredicateFor(s.dialect, d.ColumnNames(), expr, mode)
	if err != nil {
		return nil, err
	}

	queries, err := query.AssemblePage(s.dialect, d.BackendTable, d.ColumnNames(), predicate,
		sortColumn, req.SortDirection, req.Length, req.Start)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		records []tables.Record
		count   int64
	)
	read := func(exec persistence.Executor) error {
		var err error
		if count, err = s.repo.Count(ctx, exec, queries.Count); err != nil {
			return err
		}
		records, err = s.repo.Fetch(ctx, exec, queries.Data, d)
		return err
	}

	if s.snapshot != nil {
		err = s.snapshot.WithSnapshot(ctx, func(tx *sql.Tx) error { return read(tx) })
	} else {
		err = read(s.repo.GetExecutor())
	}
	if err != nil {
		return nil, err
	}

	return &models.PageResponse{
		Data:            records,
		Draw:            req.Draw,
		RecordsFiltered: count,
		RecordsTotal:    count,
	}, nil
}

// ListTables returns the registry tables in registration order
func (s *PageService) ListTables() []models.TableInfo {
	all := s.registry.All()
	out := make([]models.TableInfo, 0, len(all))
	for _, d := range all {
		out = append(out, models.TableInfo{Name: d.ShortName, Columns: d.ColumnNames()})
	}
	return out
}
