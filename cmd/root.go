package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/backend"
	"github.com/spigell/resume-parser/internal/config"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/secrets"
)

const (
	app = "resume-parser"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resume-parser checks whether a resume matches job requirements using an analysis backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command. SIGINT and SIGTERM cancel the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", app, err)
	}

	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-parser.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("base-url", backend.DefaultBaseURL, "origin of the analysis backend")
	rootCmd.PersistentFlags().String("token-file", "", "file with a bearer token for the analysis backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("token-file", rootCmd.PersistentFlags().Lookup("token-file"))
}

func initConfig() {
	// A missing .env file is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// setup loads the configuration and builds the logger and the backend client shared by commands.
func setup() (*config.Config, *zap.Logger, *backend.Client, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	token, err := secrets.Load(secrets.Source{
		Name:     "backend token",
		Value:    cfg.Token,
		File:     cfg.TokenFile,
		Optional: true,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	client := backend.New(logger.Named("backend"), cfg.BackendOptions(token))

	logger.Debug("configuration loaded",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
		zap.Duration("settle_delay", cfg.Settle.Delay),
		zap.Int("poll_attempts", cfg.Settle.PollAttempts),
		zap.Bool("token", token != ""),
	)

	return cfg, logger, client, nil
}
