package cli

import (
	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/spf13/cobra"
)

type parseResult struct {
	Input      string       `json:"input"`
	Mode       model.Mode   `json:"mode"`
	Valid      bool         `json:"valid"`
	Record     model.Record `json:"record"`
	Normalized string       `json:"normalized"`
	Label      string       `json:"label"`
}

func newParseCmd(app *App) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "parse <value>",
		Short: "Decode a value the way the picker does (malformed input falls back to today 12:00)",
		Long: `Decode a serialized value into its record.

Records use 0-based months (0 = January), matching the picker's internal
representation. "valid" reports whether the input is exactly a serialized
value of the mode; "normalized" is what the picker would write back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.mode(modeFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := args[0]
			rec := picker.Parse(in, mode, nil)
			out := parseResult{
				Input:      in,
				Mode:       mode,
				Valid:      picker.Valid(in, mode),
				Record:     rec,
				Normalized: picker.Format(rec, mode),
				Label:      picker.Label(in, mode, picker.LocaleFor(app.locale()), ""),
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Picker mode (date|datetime; default from config, else date)")
	return cmd
}

func newFormatCmd(app *App) *cobra.Command {
	var (
		modeFlag string
		year     int
		month    int
		day      int
		hour     int
		minute   int
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Encode date parts as a value (out-of-range parts roll over)",
		Example: `  datepick format --year 2025 --month 1 --day 32
  datepick format --year 2025 --month 3 --day 14 --hour 9 --minute 5 --mode datetime`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.mode(modeFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec := model.Record{Year: year, Month: month - 1, Day: day, Hour: hour, Minute: minute}
			v := picker.Format(rec, mode)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"value": v,
				"mode":  mode,
				"label": picker.Label(v, mode, picker.LocaleFor(app.locale()), ""),
			}})
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Picker mode (date|datetime)")
	cmd.Flags().IntVar(&year, "year", 0, "Year (clamped to 0..9999)")
	cmd.Flags().IntVar(&month, "month", 1, "Month (1-12)")
	cmd.Flags().IntVar(&day, "day", 1, "Day of month")
	cmd.Flags().IntVar(&hour, "hour", 0, "Hour (datetime mode)")
	cmd.Flags().IntVar(&minute, "minute", 0, "Minute (datetime mode)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
