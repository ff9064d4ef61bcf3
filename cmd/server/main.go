package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/queries"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/queries/get_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/repo"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/create_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/update_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/config"
	"github.com/murkotick/knowledge-base-service/internal/logging"
	"github.com/murkotick/knowledge-base-service/internal/pkg/clock"
	committer "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
	"github.com/murkotick/knowledge-base-service/internal/transport/grpc/interceptors"
	grpckb "github.com/murkotick/knowledge-base-service/internal/transport/grpc/knowledgebase"
)

func main() {
	var configFile string
	v := config.New()

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the knowledge-base gRPC API backed by Spanner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")
	cmd.Flags().String(config.KeyGRPCAddr, config.DefaultGRPCAddr, "gRPC listen address")
	cmd.Flags().String(config.KeySpannerDatabase, config.DefaultSpannerDatabase, "Spanner database path")
	cmd.Flags().String(config.KeyLogLevel, config.DefaultLogLevel, "log level")
	cmd.Flags().Bool(config.KeyLogJSON, false, "log as JSON")
	_ = v.BindPFlags(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return fmt.Errorf("spanner.NewClient: %w", err)
	}
	defer client.Close()

	clk := clock.RealClock{}
	kbRepo := repo.NewKnowledgeBaseRepo()
	outboxRepo := repo.NewOutboxRepo()
	cm := committer.NewAdapter(client, logger)
	readModel := queries.NewSpannerReadModel(client)

	// CQRS wiring
	cmds := grpckb.Commands{
		Create: create_knowledge_base.NewInteractor(kbRepo, outboxRepo, cm, clk),
		Update: update_knowledge_base.NewInteractor(kbRepo, outboxRepo, cm, readModel, clk),
	}
	qrys := grpckb.Queries{
		Get: get_knowledge_base.NewHandler(readModel),
	}
	h := grpckb.NewHandler(cmds, qrys)

	srv := grpc.NewServer(grpc.UnaryInterceptor(interceptors.UnaryLogging(logger)))
	grpckb.RegisterServer(srv, h)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr), zap.String("database", cfg.SpannerDatabase))
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc serve", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		srv.Stop()
	}

	logger.Info("server stopped")
	return nil
}
