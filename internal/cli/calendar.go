package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type calendarOut struct {
	Title    string                              `json:"title"`
	Year     int                                 `json:"year"`
	Month    int                                 `json:"month"`
	Weekdays [7]string                           `json:"weekdays"`
	Weeks    [picker.GridWeeks][7]picker.DayCell `json:"weeks"`
}

func newCalendarCmd(app *App) *cobra.Command {
	var (
		year           int
		month          int
		value          string
		minDay, maxDay string
		render         bool
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the day grid for a month (Sunday-first, 6 weeks)",
		Long: `Show the day grid the picker draws for a month.

Without --year/--month the month of --value is used, else the current month.
Days outside --min/--max (inclusive, compared by date) are marked disabled.
Blank cells have day 0. "month" in the output is 1-12.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := picker.LocaleFor(app.locale())
			bounds := model.Bounds{Min: minDay, Max: maxDay}

			now := time.Now()
			cursor := model.Cursor{Year: now.Year(), Month: int(now.Month()) - 1}
			var selected *model.Date
			if strings.TrimSpace(value) != "" {
				if !picker.Valid(value, model.ModeDate) && !picker.Valid(value, model.ModeDateTime) {
					return writeErr(cmd, invalidFlagError{flag: "value", value: value, want: "YYYY-MM-DD or YYYY-MM-DDTHH:mm"})
				}
				rec := picker.Parse(value, model.ModeDate, nil)
				cursor = model.Cursor{Year: rec.Year, Month: rec.Month}
				selected = &model.Date{Year: rec.Year, Month: rec.Month, Day: rec.Day}
			}
			if cmd.Flags().Changed("year") {
				cursor.Year = year
			}
			if cmd.Flags().Changed("month") {
				if month < 1 || month > 12 {
					return writeErr(cmd, invalidFlagError{flag: "month", value: strconv.Itoa(month), want: "1-12"})
				}
				cursor.Month = month - 1
			}
			cursor = picker.ShiftMonth(cursor, 0)

			weeks := picker.DayGrid(cursor, bounds, picker.Today(nil), selected)
			if render {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), renderCalendar(cmd, loc, cursor, weeks))
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": calendarOut{
				Title:    loc.MonthTitle(cursor),
				Year:     cursor.Year,
				Month:    cursor.Month + 1,
				Weekdays: loc.Weekdays,
				Weeks:    weeks,
			}})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year")
	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12)")
	cmd.Flags().StringVar(&value, "value", "", "Selected value (also picks the month when --year/--month are absent)")
	cmd.Flags().StringVar(&minDay, "min", "", "Earliest selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&maxDay, "max", "", "Latest selectable date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&render, "render", false, "Render as a text table instead of structured output")
	return cmd
}

// renderCalendar draws the grid with lipgloss/table. Colors follow the
// output's capabilities (CLICOLOR/NO_COLOR aware), so pipes get plain text.
func renderCalendar(cmd *cobra.Command, loc picker.Locale, cursor model.Cursor, weeks [picker.GridWeeks][7]picker.DayCell) string {
	r := lipgloss.NewRenderer(cmd.OutOrStdout())
	r.SetColorProfile(termenv.EnvColorProfile())

	base := r.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	header := base.Bold(true)
	muted := base.Faint(true)
	selected := base.Reverse(true).Bold(true)
	today := base.Underline(true)

	rows := make([][]string, 0, len(weeks))
	for _, week := range weeks {
		row := make([]string, 7)
		for i, c := range week {
			if c.Day != 0 {
				row[i] = strconv.Itoa(c.Day)
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(false).
		Headers(loc.Weekdays[:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(weeks) {
				return base
			}
			c := weeks[row][col]
			switch {
			case c.Selected:
				return selected
			case c.Disabled:
				return muted
			case c.Today:
				return today
			}
			return base
		})

	title := r.NewStyle().Bold(true).Render(loc.MonthTitle(cursor))
	return lipgloss.JoinVertical(lipgloss.Center, title, t.Render())
}
