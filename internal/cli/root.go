package cli

import (
	"fmt"
	"os"
	"strings"

	"datepick-cli/internal/format"
	"datepick-cli/internal/model"
	"datepick-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Locale     string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "datepick",
		Short:        "Date/time picker: interactive form + scriptable value tools",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick a date interactively (stored as field "date")
  datepick

  # Pick a start and end datetime
  datepick pick --field start --field end --mode datetime

  # Scriptable commands
  datepick parse 2025-01-05T09:30 --mode datetime
  datepick calendar --year 2025 --month 3 --render

  # Direct parse (shortcut for: datepick parse <value>)
  datepick 2025-01-05
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive picker.
			if len(args) == 0 {
				return runPick(cmd, app, pickOptions{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DATEPICK_DIR", ""), "Directory holding values.sqlite (default: config dataDir, then ~/.datepick)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("DATEPICK_LOCALE", ""), "Locale for month/weekday names (BCP-47, e.g. en-GB, nb)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DATEPICK_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newParseCmd(app))
	cmd.AddCommand(newFormatCmd(app))
	cmd.AddCommand(newCalendarCmd(app))
	cmd.AddCommand(newPlaceCmd(app))
	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newFieldsCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// config loads ~/.datepick/config.json once per invocation.
func (app *App) config() (*store.GlobalConfig, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	app.cfg = cfg
	return cfg, nil
}

// locale resolves flag/env, then config.
func (app *App) locale() string {
	if v := strings.TrimSpace(app.Locale); v != "" {
		return v
	}
	if cfg, err := app.config(); err == nil {
		return cfg.Locale
	}
	return ""
}

// mode resolves a --mode flag value, falling back to the configured default mode.
func (app *App) mode(flag string) (model.Mode, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		if cfg, err := app.config(); err == nil {
			flag = cfg.Mode
		}
	}
	m, ok := model.ParseMode(flag)
	if !ok {
		return "", invalidFlagError{flag: "mode", value: flag, want: "date|datetime"}
	}
	return m, nil
}

func (app *App) minuteStep() int {
	if cfg, err := app.config(); err == nil {
		return cfg.MinuteStep
	}
	return 0
}

func (app *App) openStore() (store.Store, error) {
	cfg, err := app.config()
	if err != nil {
		return store.Store{}, err
	}
	dir, err := cfg.ResolveDataDir(app.Dir)
	if err != nil {
		return store.Store{}, err
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
