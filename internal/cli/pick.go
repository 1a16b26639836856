package cli

import (
	"context"
	"errors"
	"strings"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"
	"datepick-cli/internal/store"
	"datepick-cli/internal/tui"

	"github.com/spf13/cobra"
)

type pickOptions struct {
	fields      []string
	mode        string
	min         string
	max         string
	placeholder string
	value       string
}

type pickedField struct {
	Name  string     `json:"name"`
	Mode  model.Mode `json:"mode"`
	Value string     `json:"value"`
	Label string     `json:"label"`
}

// runTUI is swapped out by tests.
var runTUI = tui.Run

func newPickCmd(app *App) *cobra.Command {
	var opts pickOptions

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick values interactively (one picker per --field)",
		Long: `Open the interactive form. Every committed value is saved to the value
store as it happens; the final values are printed on exit.

Existing fields keep their stored mode. --value replaces the stored value of
every listed field before the form opens.`,
		Example: `  datepick pick --field due
  datepick pick --field start --field end --mode datetime --min 2025-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, app, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "Field name (repeatable; default: date)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Mode for new fields (date|datetime)")
	cmd.Flags().StringVar(&opts.min, "min", "", "Earliest selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.max, "max", "", "Latest selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "Text shown for empty fields")
	cmd.Flags().StringVar(&opts.value, "value", "", "Initial value for every field")
	return cmd
}

func runPick(cmd *cobra.Command, app *App, opts pickOptions) error {
	mode, err := app.mode(opts.mode)
	if err != nil {
		return writeErr(cmd, err)
	}
	st, err := app.openStore()
	if err != nil {
		return writeErr(cmd, err)
	}
	ctx := cmdContext(cmd)

	specs, err := pickFields(ctx, st, opts, mode)
	if err != nil {
		return writeErr(cmd, err)
	}
	modes := make(map[string]model.Mode, len(specs))
	for _, s := range specs {
		modes[s.Name] = s.Mode
	}

	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}
	tuiOpts := tui.Options{
		Fields:     specs,
		Locale:     app.locale(),
		MinuteStep: app.minuteStep(),
		OnChange: func(field, value string) error {
			_, err := st.Set(ctx, field, modes[field], value)
			return err
		},
	}
	if cfg.TUI != nil {
		tuiOpts.Theme = cfg.TUI.Theme
		tuiOpts.Glyphs = cfg.TUI.Glyphs
	}

	values, err := runTUI(tuiOpts)
	if err != nil {
		return writeErr(cmd, err)
	}

	loc := picker.LocaleFor(app.locale())
	out := make([]pickedField, 0, len(specs))
	for _, s := range specs {
		v := values[s.Name]
		out = append(out, pickedField{Name: s.Name, Mode: s.Mode, Value: v, Label: picker.Label(v, s.Mode, loc, "")})
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"fields": out}})
}

// pickFields builds the form's fields from stored values. A --value is
// validated against each field's mode and saved before the form opens.
func pickFields(ctx context.Context, st store.Store, opts pickOptions, mode model.Mode) ([]tui.FieldSpec, error) {
	names := opts.fields
	if len(names) == 0 {
		names = []string{"date"}
	}
	seen := map[string]bool{}
	specs := make([]tui.FieldSpec, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalidFlagError{flag: "field", value: name, want: "a non-empty name"}
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		spec := tui.FieldSpec{
			Name:        name,
			Mode:        mode,
			Bounds:      model.Bounds{Min: opts.min, Max: opts.max},
			Placeholder: opts.placeholder,
		}
		f, err := st.Get(ctx, name)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			spec.Mode = f.Mode
			spec.Value = f.Value
		}
		if opts.value != "" {
			saved, err := st.Set(ctx, name, spec.Mode, opts.value)
			if err != nil {
				return nil, err
			}
			spec.Value = saved.Value
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
