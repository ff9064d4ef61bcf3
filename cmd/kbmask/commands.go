package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/editor"
	"github.com/murkotick/knowledge-base-service/internal/config"
	"github.com/murkotick/knowledge-base-service/internal/logging"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
	grpckb "github.com/murkotick/knowledge-base-service/internal/transport/grpc/knowledgebase"
)

type options struct {
	configFile   string
	baselineFile string
	editedFile   string
	id           string
}

type app struct {
	v      *viper.Viper
	opts   options
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "kbmask",
		Short:         "Compute knowledge-base update masks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.opts.configFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configFile, "config", "", "optional config file")
	pf.StringVar(&a.opts.baselineFile, "baseline", "", "JSON file with the fetched knowledge base")
	pf.StringVar(&a.opts.editedFile, "edited", "", "JSON file with the edited knowledge base")
	pf.StringVar(&a.opts.id, "id", "", "knowledge base id (defaults to the baseline's id)")
	pf.String(config.KeyRulesFile, "", "YAML file replacing the built-in remap rules")
	pf.String(config.KeyLogLevel, "warn", "log level")
	_ = root.MarkPersistentFlagRequired("baseline")
	_ = root.MarkPersistentFlagRequired("edited")
	_ = a.v.BindPFlag(config.KeyRulesFile, pf.Lookup(config.KeyRulesFile))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup(config.KeyLogLevel))

	root.AddCommand(a.maskCmd(), a.sendCmd())
	return root
}

func (a *app) maskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mask",
		Short: "Print the update request for the edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var captured *dto.UpdateRequest
			session, err := a.session(updaterFunc(func(_ context.Context, req *dto.UpdateRequest) (*domain.KnowledgeBase, error) {
				captured = req
				return req.KnowledgeBase, nil
			}))
			if err != nil {
				return err
			}

			_, err = session.Save(cmd.Context())
			if errors.Is(err, editor.ErrNoChanges) {
				captured, err = editor.BuildUpdateRequest(session.ID(), session.Form().KnowledgeBase(session.ID()), nil)
			}
			if err != nil {
				return err
			}

			wire, err := grpckb.EncodeUpdateRequest(captured)
			if err != nil {
				return err
			}
			out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(wire)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func (a *app) sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the edit to a knowledge-base server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := grpc.NewClient(a.cfg.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("dial %s: %w", a.cfg.GRPCAddr, err)
			}
			defer conn.Close()

			session, err := a.session(grpckb.NewClient(conn))
			if err != nil {
				return err
			}
			saved, err := session.Save(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(saved)
		},
	}
	cmd.Flags().String(config.KeyGRPCAddr, config.DefaultGRPCAddr, "server address")
	_ = a.v.BindPFlag(config.KeyGRPCAddr, cmd.Flags().Lookup(config.KeyGRPCAddr))
	return cmd
}

// session opens an edit session on the baseline and applies the edited file as the user's edit.
func (a *app) session(up contracts.Updater) (*editor.Session, error) {
	baseline, err := loadKnowledgeBase(a.opts.baselineFile)
	if err != nil {
		return nil, err
	}
	edited, err := loadKnowledgeBase(a.opts.editedFile)
	if err != nil {
		return nil, err
	}
	if a.opts.id != "" {
		baseline.ID = a.opts.id
	}

	opts := []editor.Option{editor.WithLogger(a.logger)}
	if a.cfg.RulesFile != "" {
		rules, err := fieldmask.LoadRulesFile(a.cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, editor.WithRules(rules))
	}

	s, err := editor.NewSession(baseline, up, opts...)
	if err != nil {
		return nil, err
	}
	s.Enter()
	if err := s.Edit(func(f *domain.Form) { *f = domain.FormFromKnowledgeBase(edited) }); err != nil {
		return nil, err
	}
	a.logger.Debug("computed update mask", zap.String("knowledge_base_id", s.ID()),
		zap.Strings("update_mask", fieldmask.Strings(s.Mask())))
	return s, nil
}

func loadKnowledgeBase(path string) (*domain.KnowledgeBase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kb domain.KnowledgeBase
	if err := json.Unmarshal(b, &kb); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &kb, nil
}

type updaterFunc func(context.Context, *dto.UpdateRequest) (*domain.KnowledgeBase, error)

func (f updaterFunc) Update(ctx context.Context, req *dto.UpdateRequest) (*domain.KnowledgeBase, error) {
	return f(ctx, req)
}
