package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geogrid-service/internal/pkg/geohash"
)

type precisionEntry struct {
	Zoom      int `json:"zoom"`
	Precision int `json:"precision"`
}

// NewPrecisionCommand создаёт команду precision
func NewPrecisionCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		zoom         int
		maxPrecision int
	)

	cmd := &cobra.Command{
		Use:   "precision",
		Short: "Print geohash precision for a zoom level or the whole table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapper := geohash.NewMapper(maxPrecision)
			out := cmd.OutOrStdout()

			var entries []precisionEntry
			if cmd.Flags().Changed("zoom") {
				if zoom < 0 || zoom > geohash.MaxZoom {
					return fmt.Errorf("zoom must be in 0..%d, got %d", geohash.MaxZoom, zoom)
				}
				entries = []precisionEntry{{Zoom: zoom, Precision: mapper.Precision(zoom)}}
			} else {
				for z, p := range mapper.Table() {
					entries = append(entries, precisionEntry{Zoom: z, Precision: p})
				}
			}

			if rootOpts.Format == "json" {
				return writeJSON(out, entries)
			}
			for _, e := range entries {
				fmt.Fprintf(out, "zoom %2d -> precision %d\n", e.Zoom, e.Precision)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&zoom, "zoom", 0, "map zoom level (0-21)")
	cmd.Flags().IntVar(&maxPrecision, "max-precision", geohash.DefaultMaxPrecision, "upper bound for automatic precision")

	return cmd
}
