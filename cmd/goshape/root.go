package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
	"github.com/reoring/goshape/i18n"
)

// config is the resolved CLI configuration: flags, then GOSHAPE_* environment
// variables, then .goshape.yaml.
type config struct {
	Lang     string `json:"lang"`
	LogLevel string `json:"log_level"`
	Schemas  string `json:"schemas"`
	Listen   string `json:"listen"`
	Watch    bool   `json:"watch"`
	MaxBytes int64  `json:"max_bytes"`
	MaxDepth int    `json:"max_depth"`
}

var configSchema = g.Object().
	Field("lang", g.Enum("en", "ja").Default("en")).
	Field("log_level", g.Enum("debug", "info", "warn", "error").Default("info")).
	Field("schemas", g.String().Optional()).
	Field("listen", g.String().NonEmpty().Default(":8080")).
	Field("watch", g.Boolean().Default(false)).
	Field("max_bytes", g.Number().Int().Positive().Default(1<<20)).
	Field("max_depth", g.Number().Int().NonNegative().Default(64)).
	Strict()

// app carries state shared by the subcommands once the root pre-run has
// resolved configuration.
type app struct {
	v      *viper.Viper
	cfg    config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "goshape",
		Short:         "goshape validates JSON and YAML documents against schemas",
		Long:          `goshape loads schemas from OpenAPI or JSON Schema documents and validates data with them, from the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default .goshape.yaml in the working directory)")
	pf.String("lang", "", "Message language (en, ja)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("schemas", "", "OpenAPI or JSON Schema document holding the schemas")
	pf.Int64("max-bytes", 0, "Maximum input size in bytes")
	pf.Int("max-depth", 0, "Maximum nesting depth of input documents")
	for key, flag := range map[string]string{
		"lang": "lang", "log_level": "log-level", "schemas": "schemas",
		"max_bytes": "max-bytes", "max_depth": "max-depth",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(
		newValidateCmd(a),
		newJSONSchemaCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	v.SetEnvPrefix("GOSHAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".goshape")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := goshape.Bind[config](contextOf(cmd), configSchema, settings(v))
	if err != nil {
		if iss, ok := goshape.AsIssues(err); ok {
			return fmt.Errorf("invalid configuration:\n%s", goshape.Format(iss))
		}
		return err
	}
	a.cfg = cfg

	i18n.SetLanguage(cfg.Lang)
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("path", used).Msg("loaded config file")
	}
	return nil
}

// settings collects the configured values. Unset keys are left out so the
// config schema supplies defaults. Typed getters turn environment strings
// into the right kinds.
func settings(v *viper.Viper) map[string]any {
	m := map[string]any{}
	for _, k := range []string{"lang", "log_level", "schemas", "listen"} {
		if s := v.GetString(k); s != "" {
			m[k] = s
		}
	}
	if v.IsSet("watch") {
		m["watch"] = v.GetBool("watch")
	}
	if n := v.GetInt64("max_bytes"); n != 0 {
		m["max_bytes"] = n
	}
	if v.IsSet("max_depth") && v.GetInt("max_depth") != 0 {
		m["max_depth"] = v.GetInt("max_depth")
	}
	return m
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
}

func (a *app) parseOpt() goshape.ParseOpt {
	return goshape.ParseOpt{
		Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error},
		MaxBytes:   a.cfg.MaxBytes,
		MaxDepth:   a.cfg.MaxDepth,
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
