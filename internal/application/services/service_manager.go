package services

import (
	"fmt"

	"github.com/nexuscrm/datatable/internal/config"
	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/internal/infrastructure/database"
	"github.com/nexuscrm/datatable/internal/infrastructure/persistence"
)

// ServiceManager orchestrates all services with dependency injection
type ServiceManager struct {
	conn *database.Connection

	Registry  *tables.Registry
	Tables    *persistence.TableRepository
	TxManager *persistence.TransactionManager
	Page      *PageService
	Export    *ExportService
	Retention *RetentionService
}

// NewServiceManager creates a new service manager with all dependencies wired.
// mirror may be nil.
func NewServiceManager(conn *database.Connection, cfg *config.Config, mirror ExportMirror) (*ServiceManager, error) {
	sm := &ServiceManager{
		conn:     conn,
		Registry: tables.DefaultRegistry(),
	}

	dialect := conn.Dialect()
	timeout := cfg.Query.TimeoutDuration()

	sm.Tables = persistence.NewTableRepository(conn.DB())
	sm.TxManager = persistence.NewTransactionManager(conn.DB(), cfg.Database.Driver)

	var snapshot Snapshotter
	if cfg.Query.Snapshot {
		snapshot = sm.TxManager
	}
	sm.Page = NewPageService(sm.Registry, dialect, sm.Tables, snapshot, timeout)
	sm.Export = NewExportService(sm.Registry, dialect, sm.Tables, cfg.Export.Dir, timeout, mirror)

	retention, err := cfg.Export.RetentionDuration()
	if err != nil {
		return nil, err
	}
	sm.Retention, err = NewRetentionService(cfg.Export.Dir, retention, cfg.Export.Schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to create retention service: %w", err)
	}

	return sm, nil
}

// StartRetention starts the background export retention sweep.
// Call this during server startup.
func (sm *ServiceManager) StartRetention() {
	if sm.Retention != nil {
		sm.Retention.Start()
	}
}

// StopRetention stops the export retention sweep gracefully.
// Call this during server shutdown.
func (sm *ServiceManager) StopRetention() {
	if sm.Retention != nil {
		sm.Retention.Stop()
	}
}
