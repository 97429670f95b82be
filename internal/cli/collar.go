package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geogrid-service/internal/pkg/geohash"
)

// NewCollarCommand создаёт команду collar
func NewCollarCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		viewport string
		margin   float64
	)

	cmd := &cobra.Command{
		Use:   "collar",
		Short: "Expand a viewport into a map collar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := parseViewport(viewport)
			if err != nil {
				return err
			}
			if margin <= 0 {
				return fmt.Errorf("margin must be positive, got %g", margin)
			}

			collar := geohash.Expand(box, margin)
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, collar)
			}
			fmt.Fprintf(out, "viewport: %s\n", formatBox(box))
			fmt.Fprintf(out, "collar:   %s\n", formatBox(collar))
			return nil
		},
	}

	cmd.Flags().StringVar(&viewport, "viewport", "", "viewport as top,left,bottom,right")
	cmd.Flags().Float64Var(&margin, "margin", geohash.DefaultMargin, "share of viewport size added on each side")
	_ = cmd.MarkFlagRequired("viewport")

	return cmd
}
