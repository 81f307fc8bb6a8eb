package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/factuurdesk/factuurdesk/internal/types"
)

// ExportReports writes the quarterly tax and yearly revenue CSV files to OUTPUT_DIR
func ExportReports() error {
	deps := newScriptDeps()
	defer deps.db.Close()

	now := time.Now().In(deps.cfg.Reports.Location())
	year := now.Year()
	quarter := (int(now.Month())-1)/3 + 1
	if raw := os.Getenv("YEAR"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid YEAR %q", raw)
		}
		year = n
	}
	if raw := os.Getenv("QUARTER"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid QUARTER %q", raw)
		}
		quarter = n
	}
	dir := os.Getenv("OUTPUT_DIR")
	if dir == "" {
		dir = "."
	}

	reports := service.NewReportService(deps.params)
	ctx := context.Background()

	requests := []*service.ExportRequest{
		{Kind: types.ReportKindTax, Year: year, Quarter: quarter},
		{Kind: types.ReportKindRevenue, Year: year},
		{Kind: types.ReportKindAging},
	}
	for _, req := range requests {
		export, err := reports.ExportCSV(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to export %s report: %w", req.Kind, err)
		}
		path := filepath.Join(dir, export.FileName)
		if err := os.WriteFile(path, export.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		deps.log.Infow("exported report", "kind", req.Kind, "path", path)
	}
	return nil
}
