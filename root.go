package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizan/roster/app"
	"github.com/faizan/roster/config"
	"github.com/faizan/roster/logger"
)

// runtime lazily loads configuration, the logger and the database for the
// subcommands that need them.
type runtime struct {
	configPath *string

	once sync.Once
	cfg  *config.Config
	log  *zap.Logger
	err  error
}

func (r *runtime) load() (*config.Config, *zap.Logger, error) {
	r.once.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(*r.configPath))
		if err != nil {
			r.err = err
			return
		}
		log, err := logger.New(cfg.Log)
		if err != nil {
			r.err = err
			return
		}
		r.cfg, r.log = cfg, log
	})
	return r.cfg, r.log, r.err
}

// open loads everything and returns an open, migrated database.
func (r *runtime) open(ctx context.Context) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, log, err := r.load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := config.OpenDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := config.Migrate(db); err != nil {
		_ = config.CloseDB(db)
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func (r *runtime) app(ctx context.Context) (*app.App, func(), error) {
	cfg, log, db, err := r.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg, db, log)
	if err != nil {
		_ = config.CloseDB(db)
		return nil, nil, err
	}
	closeFn := func() {
		if err := config.CloseDB(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
		_ = log.Sync()
	}
	return a, closeFn, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	rt := &runtime{configPath: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "roster",
		Short:         "Artist roster API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")

	rootCmd.AddCommand(newServeCommand(rt))
	rootCmd.AddCommand(newMigrateCommand(rt))
	rootCmd.AddCommand(newCreateAdminCommand(rt))
	return rootCmd
}

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a, closeFn, err := rt.app(ctx)
			if err != nil {
				return err
			}
			defer closeFn()
			return a.Serve(ctx)
		},
	}
}

func newMigrateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("schema migrated")
			return config.CloseDB(db)
		},
	}
}

func newCreateAdminCommand(rt *runtime) *cobra.Command {
	in := app.AdminInput{
		FirstName: "Super",
		LastName:  "Admin",
		Phone:     "0000000000",
		Dob:       "1970-01-01",
		Gender:    "O",
		Address:   "N/A",
	}
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a super_admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := rt.app(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			u, err := a.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created super_admin %s (id %d)\n", u.Email, u.ID)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&in.Email, "email", "", "Admin email")
	flags.StringVar(&in.Password, "password", "", "Admin password (at least 6 characters)")
	flags.StringVar(&in.FirstName, "first-name", in.FirstName, "First name")
	flags.StringVar(&in.LastName, "last-name", in.LastName, "Last name")
	flags.StringVar(&in.Phone, "phone", in.Phone, "Phone number")
	flags.StringVar(&in.Dob, "dob", in.Dob, "Date of birth (YYYY-MM-DD)")
	flags.StringVar(&in.Gender, "gender", in.Gender, "Gender (M, F, O)")
	flags.StringVar(&in.Address, "address", in.Address, "Address")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
