// Package cli - команды geogridctl для локальной проверки сборки агрегаций
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions - глобальные флаги
type RootOptions struct {
	Format string // "json" | "text"
}

// ValidFormats - допустимые форматы вывода
var ValidFormats = []string{"text", "json"}

// NewRootCommand создаёт корневую команду geogridctl
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "geogridctl",
		Short: "GeoGrid - geohash aggregation toolkit",
		Long:  "Offline tooling for zoom-to-precision mapping, map collar geometry and geohash aggregation requests.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewPrecisionCommand(opts))
	cmd.AddCommand(NewCollarCommand(opts))
	cmd.AddCommand(NewBuildCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
