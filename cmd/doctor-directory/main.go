// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doctor-directory CLI. It lists,
// searches, and browses the doctor directory from a terminal, manages the
// local snapshot catalog, and serves the directory as an HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doctor-directory/internal/catalog"
	"github.com/pdiddy/doctor-directory/internal/secrets"
	"github.com/pdiddy/doctor-directory/internal/source"
	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the doctor-directory CLI.
var rootCmd = &cobra.Command{
	Use:   "doctor-directory",
	Short: "Search, filter, and sort a directory of doctors",
	Long: `doctor-directory reads a list of doctors from a JSON endpoint, file, S3
object, or local snapshot catalog and narrows it by name, consultation mode,
and specialty, optionally sorted by fees or experience.

Filter state round-trips through a query string (search, mode, specialty,
sort), so a result set can be shared, reopened with --query, or driven over
HTTP with the serve command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(viper.GetString("log.level")); err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Info("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doctor-directory.yaml or ~/.config/doctor-directory/doctor-directory.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of credential files")
	rootCmd.PersistentFlags().String("source", "", "data source: URL, file path, s3://bucket/key, or sqlite:path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("source.location", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setDefaults() {
	viper.SetDefault("source.location", "")
	viper.SetDefault("source.timeout", "30s")
	viper.SetDefault("source.user_agent", source.DefaultUserAgent)
	viper.SetDefault("source.max_retries", 0)
	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("s3.endpoint", "")
	viper.SetDefault("s3.path_style", false)
	viper.SetDefault("s3.access_key_id", "")
	viper.SetDefault("s3.secret_access_key", "")
	viper.SetDefault("s3.session_token", "")
	viper.SetDefault("catalog.path", catalog.DefaultPath)
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.rate_limit", 0)
	viper.SetDefault("url.policy", string(types.URLPolicyChangedOnly))
	viper.SetDefault("log.level", "warn")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doctor-directory")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doctor-directory"))
		}
	}

	viper.SetEnvPrefix("DOCTOR_DIRECTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings and fills S3 credentials
// from the secrets directory.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	policy, err := urlstate.ParsePolicy(string(cfg.URL.Policy))
	if err != nil {
		return cfg, err
	}
	cfg.URL.Policy = policy
	secrets.ApplyS3(&cfg.S3, loadedSecrets)
	return cfg, nil
}

func setupLogger(level string) error {
	var lvl slog.Level
	if level == "" {
		level = "warn"
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: use debug, info, warn, or error", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
