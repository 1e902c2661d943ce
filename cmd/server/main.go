package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nexuscrm/datatable/internal/application/services"
	"github.com/nexuscrm/datatable/internal/config"
	"github.com/nexuscrm/datatable/internal/infrastructure/database"
	"github.com/nexuscrm/datatable/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "datatable",
	Short:         "Server-side backend for searchable, paginated data tables with CSV export",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd(), newExportCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and wires the database, the optional
// export mirror and the service manager. The caller closes the connection.
func bootstrap(ctx context.Context) (*config.Config, *database.Connection, *services.ServiceManager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	conn, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("✅ Database connection established (%s)", conn.Dialect().Name())

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	var mirror services.ExportMirror
	if client.Enabled() {
		mirror = client
		log.Printf("🪣 Mirroring exports to bucket %s at %s", cfg.Storage.Bucket, cfg.Storage.Endpoint)
	}

	svcMgr, err := services.NewServiceManager(conn, cfg, mirror)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	log.Println("🔧 Service manager initialized")

	return cfg, conn, svcMgr, nil
}
