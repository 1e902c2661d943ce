// Package services provides the business logic layer for the data table backend.
//
// This package contains:
//   - Paginated table pages with search and sorting (PageService)
//   - CSV exports sharing the page search semantics (ExportService)
//   - Scheduled cleanup of old export files (RetentionService)
//
// Services depend on small interfaces (TableReader, Snapshotter,
// ExportMirror) so they can be tested with sqlmock or mocks.
package services
