package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lineitems "github.com/goliatone/go-lineitems"
	"github.com/goliatone/go-lineitems/pkg/controller"
	"github.com/goliatone/go-lineitems/pkg/loader"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code up to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

var (
	flagConfig  string
	flagNew     bool
	flagVerbose bool

	settings *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:           "lineitems",
	Short:         "Edit the products of a delivery",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := newSettings(cmd.Flags())
		if err != nil {
			return err
		}
		settings = v
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "settings file, JSON, YAML or TOML (default: ./lineitems.yaml if present)")
	flags.String(cfgKeyLocale, "", "locale for labels and messages (fr, en)")
	flags.String(cfgKeyStrategy, "", "description swap strategy (flag-swap, destroy-recreate)")
	flags.Int(cfgKeyBlankRows, 0, "blank rows appended after the products")
	flags.String(cfgKeyTheme, "", "theme name for the HTML form")
	flags.String(cfgKeyVariant, "", "theme variant")
	flags.BoolVar(&flagNew, "new", false, "treat the source as a new delivery (empty name)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log form operations to stderr")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(editCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openForm builds the app from the settings and loads the delivery at arg.
func openForm(cmd *cobra.Command, arg string, options ...lineitems.Option) (*lineitems.App, *controller.Controller, error) {
	cfg, err := loadConfig(settings, flagConfig)
	if err != nil {
		return nil, nil, &exitError{code: exitUserError, err: err}
	}
	src, err := loader.ParseSource(arg)
	if err != nil {
		return nil, nil, &exitError{code: exitUserError, err: err}
	}
	options = append([]lineitems.Option{lineitems.WithLogger(newLogger())}, options...)
	app, err := lineitems.New(cfg, options...)
	if err != nil {
		return nil, nil, &exitError{code: exitUserError, err: err}
	}
	c, err := app.Open(cmd.Context(), src, controller.LoadOptions{New: flagNew})
	if err != nil {
		return nil, nil, &exitError{code: exitSysError, err: err}
	}
	return app, c, nil
}
