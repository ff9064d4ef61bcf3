package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"go.uber.org/zap"

	"github.com/murkotick/knowledge-base-service/internal/config"
	"github.com/murkotick/knowledge-base-service/internal/logging"
)

// A small migration helper that applies the DDL in migrations/001_initial_schema.sql
// to a Cloud Spanner database (typically the emulator for local dev).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export KB_SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
func main() {
	cfg, err := config.Load(config.New(), "")
	if err != nil {
		panic(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ddlPath := filepath.Join("migrations", "001_initial_schema.sql")
	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		logger.Fatal("read DDL", zap.String("path", ddlPath), zap.Error(err))
	}
	if len(stmts) == 0 {
		logger.Fatal("no DDL statements found", zap.String("path", ddlPath))
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		logger.Fatal("database admin client", zap.Error(err))
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.SpannerDatabase,
		Statements: stmts,
	})
	if err != nil {
		logger.Fatal("UpdateDatabaseDdl", zap.Error(err))
	}
	if err := op.Wait(ctx); err != nil {
		logger.Fatal("UpdateDatabaseDdl wait", zap.Error(err))
	}

	logger.Info("applied DDL", zap.Int("statements", len(stmts)), zap.String("database", cfg.SpannerDatabase))
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	var out []string
	for _, p := range strings.Split(sql, ";") {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}

