package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geogrid-service/internal/aggtype"
	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/pkg/geohash"
)

// BuildResult - вывод команды build в формате json
type BuildResult struct {
	Field      string                     `json:"field"`
	Precision  int                        `json:"precision"`
	Viewport   *domain.BoundingBox        `json:"viewport,omitempty"`
	Collar     *domain.MapCollar          `json:"collar,omitempty"`
	Clauses    []domain.AggregationClause `json:"clauses"`
	SearchBody map[string]interface{}     `json:"search_body"`
}

type buildOptions struct {
	field        string
	viewport     string
	zoom         int
	noFilter     bool
	noCentroid   bool
	precision    int
	margin       float64
	maxPrecision int
	gridBounds   string
}

// NewBuildCommand создаёт команду build
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build geohash aggregations for a single map state",
		Long: `Build the ordered aggregation list and the search request body
for one viewport and zoom, using a throwaway in-memory session.

Precision follows the zoom unless --precision is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runBuild(opts, cmd.Flags().Changed("precision"))
			if err != nil {
				return err
			}
			return printBuild(cmd, rootOpts, res)
		},
	}

	cmd.Flags().StringVar(&opts.field, "field", "", "geo_point field name")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "viewport as top,left,bottom,right")
	cmd.Flags().IntVar(&opts.zoom, "zoom", 0, "map zoom level (0-21)")
	cmd.Flags().BoolVar(&opts.noFilter, "no-filter", false, "skip the collar filter aggregation")
	cmd.Flags().BoolVar(&opts.noCentroid, "no-centroid", false, "skip the geo_centroid aggregation")
	cmd.Flags().IntVar(&opts.precision, "precision", geohash.DefaultPrecision, "literal precision, disables automatic precision")
	cmd.Flags().Float64Var(&opts.margin, "margin", geohash.DefaultMargin, "collar margin")
	cmd.Flags().IntVar(&opts.maxPrecision, "max-precision", geohash.DefaultMaxPrecision, "upper bound for automatic precision")
	cmd.Flags().StringVar(&opts.gridBounds, "grid-bounds", string(domain.GridBoundsViewport), "grid bounds source (viewport|collar|none)")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("viewport")
	_ = cmd.MarkFlagRequired("zoom")

	return cmd
}

func runBuild(opts *buildOptions, literalPrecision bool) (*BuildResult, error) {
	box, err := parseViewport(opts.viewport)
	if err != nil {
		return nil, err
	}
	if opts.zoom < 0 || opts.zoom > geohash.MaxZoom {
		return nil, fmt.Errorf("zoom must be in 0..%d, got %d", geohash.MaxZoom, opts.zoom)
	}
	gridBounds, err := domain.ParseGridBoundsSource(opts.gridBounds)
	if err != nil {
		return nil, err
	}

	session := aggtype.NewMemorySession()
	if err := putJSON(session, aggtype.SessionKeyMapBounds, box); err != nil {
		return nil, err
	}
	if err := putJSON(session, aggtype.SessionKeyMapZoom, opts.zoom); err != nil {
		return nil, err
	}

	agg := aggtype.NewGeoHashAgg(aggtype.Options{
		Margin:       opts.margin,
		MaxPrecision: opts.maxPrecision,
		GridBounds:   gridBounds,
	})

	result, err := agg.RequestAggs(&aggtype.AggConfig{
		Field: opts.field,
		Params: aggtype.AggParams{
			IsFilteredByCollar: !opts.noFilter,
			UseGeocentroid:     !opts.noCentroid,
			AutoPrecision:      !literalPrecision,
			Precision:          aggtype.FormatPrecision(opts.precision),
		},
		Vis: &aggtype.Vis{Session: session, UIState: session},
	})
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Field:      opts.field,
		Precision:  result.Precision,
		Viewport:   result.Viewport,
		Collar:     result.Collar,
		Clauses:    result.Clauses,
		SearchBody: aggtype.SearchBody(result.Clauses),
	}, nil
}

func putJSON(session aggtype.SessionState, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	session.Set(key, raw)
	return nil
}

func printBuild(cmd *cobra.Command, rootOpts *RootOptions, res *BuildResult) error {
	out := cmd.OutOrStdout()
	if rootOpts.Format == "json" {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "field:     %s\n", res.Field)
	fmt.Fprintf(out, "precision: %d\n", res.Precision)
	if res.Collar != nil {
		fmt.Fprintf(out, "collar:    %s (zoom %d)\n", formatBox(res.Collar.BoundingBox), res.Collar.Zoom)
	}
	fmt.Fprintln(out, "clauses:")
	for i, c := range res.Clauses {
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, c.ID, c.Type)
	}
	fmt.Fprintln(out, "search body:")
	return writeJSON(out, res.SearchBody)
}
