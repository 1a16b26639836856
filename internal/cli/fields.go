package cli

import (
	"context"
	"errors"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"
	"datepick-cli/internal/store"

	"github.com/spf13/cobra"
)

type fieldOut struct {
	store.Field
	Label string `json:"label"`
}

func newFieldsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"field"},
		Short:   "Read and write stored picker values",
	}
	cmd.AddCommand(newFieldsListCmd(app))
	cmd.AddCommand(newFieldsGetCmd(app))
	cmd.AddCommand(newFieldsSetCmd(app))
	cmd.AddCommand(newFieldsClearCmd(app))
	cmd.AddCommand(newFieldsHistoryCmd(app))
	cmd.AddCommand(newFieldsRmCmd(app))
	return cmd
}

func newFieldsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			fields, err := st.List(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]fieldOut, 0, len(fields))
			for _, f := range fields {
				out = append(out, app.labeled(f))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newFieldsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := st.Get(cmdContext(cmd), args[0])
			if err != nil {
				return writeErr(cmd, fieldErr(args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": app.labeled(f)})
		},
	}
}

func newFieldsSetCmd(app *App) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a value (validated against the field's mode)",
		Long: `Store a value for a field, creating it when missing.

New fields take --mode (default from config, else date). Existing fields keep
their mode; the value must be exactly YYYY-MM-DD (date) or YYYY-MM-DDTHH:mm
(datetime).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.mode(modeFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.storeValue(cmd, args[0], mode, args[1])
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Mode for a new field (date|datetime)")
	return cmd
}

func newFieldsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <name>",
		Short: "Set a field to the empty value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.mode("")
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.storeValue(cmd, args[0], mode, "")
		},
	}
}

func newFieldsHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <name>",
		Short: "Show the values a field has held, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmdContext(cmd)
			if _, err := st.Get(ctx, args[0]); err != nil {
				return writeErr(cmd, fieldErr(args[0], err))
			}
			hist, err := st.History(ctx, args[0], limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": hist})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries (0 = all)")
	return cmd
}

func newFieldsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a field and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Delete(cmdContext(cmd), args[0]); err != nil {
				return writeErr(cmd, fieldErr(args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}

func (app *App) storeValue(cmd *cobra.Command, name string, mode model.Mode, value string) error {
	st, err := app.openStore()
	if err != nil {
		return writeErr(cmd, err)
	}
	f, err := st.Set(cmdContext(cmd), name, mode, value)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": app.labeled(f)})
}

func (app *App) labeled(f store.Field) fieldOut {
	return fieldOut{Field: f, Label: picker.Label(f.Value, f.Mode, picker.LocaleFor(app.locale()), "")}
}

func fieldErr(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("field", name)
	}
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
