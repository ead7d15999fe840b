package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"storefront-backend/lib/configuration"
	"storefront-backend/lib/serviceutil"
	"storefront-backend/lib/telemetry"
	"storefront-backend/services/catalog/db"
	"storefront-backend/services/importer"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
)

// one-shot catalog import: reads the export files under data/ and
// bulk-inserts them into the store configured by DATABASE_URL and
// DATABASE_AUTH_TOKEN. behavior is fully determined by the
// environment, there are no flags.
func main() {
	err := godotenv.Load()
	if err == nil {
		slog.Info("loaded .env file")
	}
	telemetry.InitSlog(false)

	libsql, err := configuration.LibsqlFromEnv()
	if err != nil {
		serviceutil.Fatal("missing store configuration", err)
	}

	database, err := libsql.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open store", err)
	}
	defer database.Close()

	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "cmd/import")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if err == nil {
		defer tel.Shutdown(context.Background())
	}

	run := importer.New(database, importer.Options{DataDir: "data"})
	summary, err := run.Run(ctx)
	if err != nil {
		serviceutil.Fatal("import failed", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Entity", "Read", "Inserted", "Dropped"})
	for _, e := range summary.Entities {
		t.AppendRow(table.Row{e.Entity, e.Read, e.Inserted, e.Dropped})
	}
	t.AppendFooter(table.Row{"elapsed", summary.Elapsed.Round(time.Millisecond)})
	t.Render()
}
