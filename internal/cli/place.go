package cli

import (
	"errors"
	"strconv"
	"strings"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/spf13/cobra"
)

func newPlaceCmd(app *App) *cobra.Command {
	var (
		anchorFlag string
		viewport   float64
		height     float64
		gap        float64
		minWidth   float64
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where the popover opens for an anchor box",
		Long: `Compute the popover placement for an anchor.

The popover opens below the anchor unless there is not enough room below and
there is enough room above. It is pinned to the anchor's left edge and is at
least --min-width wide. For side "above", "bottom" is the distance from the
viewport's bottom edge; "popover" is the resulting box.`,
		Example: `  datepick place --anchor 20,40,200,32 --viewport 800
  datepick place --anchor 20,700,200,32 --viewport 800 --height 320`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := parseRect(anchorFlag)
			if err != nil {
				return writeErr(cmd, invalidFlagError{flag: "anchor", value: anchorFlag, want: "left,top,width,height"})
			}
			if viewport <= 0 {
				return writeErr(cmd, invalidFlagError{flag: "viewport", value: strconv.FormatFloat(viewport, 'f', -1, 64), want: "a positive height"})
			}

			ctl := picker.NewController(picker.Options{
				Anchor:   picker.AnchorFunc(func() (model.Rect, bool) { return anchor, true }),
				Position: &picker.PositionEngine{Gap: gap, MinWidth: minWidth},
			})
			if !ctl.Open(viewport, height) {
				return writeErr(cmd, errors.New("anchor cannot be measured"))
			}
			defer ctl.Teardown()

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"anchor":    anchor,
				"placement": ctl.Placement(),
				"popover":   ctl.PopoverRect(),
			}})
		},
	}

	cmd.Flags().StringVar(&anchorFlag, "anchor", "", "Anchor box as left,top,width,height")
	cmd.Flags().Float64Var(&viewport, "viewport", 0, "Viewport height")
	cmd.Flags().Float64Var(&height, "height", 300, "Estimated popover height")
	cmd.Flags().Float64Var(&gap, "gap", picker.DefaultPosition.Gap, "Gap between anchor and popover")
	cmd.Flags().Float64Var(&minWidth, "min-width", picker.DefaultPosition.MinWidth, "Minimum popover width")
	_ = cmd.MarkFlagRequired("anchor")
	_ = cmd.MarkFlagRequired("viewport")
	return cmd
}

// parseRect reads "left,top,width,height".
func parseRect(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, errors.New("want 4 comma-separated numbers")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Rect{}, err
		}
		v[i] = f
	}
	return model.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}
