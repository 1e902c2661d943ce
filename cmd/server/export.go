package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/nexuscrm/datatable/internal/domain/models"
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var req models.ExportRequest

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching rows of a table to CSV once and print the result",
		Example: `  datatable export --table table1 --search "abc|def" --match like
  datatable export --table table2 --search ___`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			_, conn, svcMgr, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			result, err := svcMgr.Export.Export(ctx, req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(models.ExportResponse{
				Message:            result.FilePath,
				Status:             200,
				Rows:               result.Rows,
				TimeTakenForExport: result.ElapsedSeconds(),
			})
		},
	}

	cmd.Flags().StringVar(&req.TableName, "table", constants.TableRandom, "table short name")
	cmd.Flags().StringVar(&req.SearchString, "search", constants.NoFilterSentinel, "search expression ('+' for AND, '|' for OR)")
	cmd.Flags().StringVar(&req.PatternMatch, "match", constants.PatternMatchLike, "pattern match: like or exact")
	return cmd
}
