package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codelists/ssb"
)

var (
	optionsLanguage string
	optionsFilters  []string
)

var optionsCmd = &cobra.Command{
	Use:   "options <id>",
	Short: "Resolve one codelist and print it as JSON",
	Example: `  codelists options kjonn --language en
  codelists options naringsgruppering --filter parentCode=A --filter date=2023-01-01
  codelists options kommuner --filter fylke=46`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters(optionsFilters)
		if err != nil {
			return err
		}

		container, err := newContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		opts, err := container.Registry().GetOptions(cmd.Context(), args[0], optionsLanguage, filters)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(opts)
	},
}

func init() {
	optionsCmd.Flags().StringVarP(&optionsLanguage, "language", "l", ssb.DefaultLanguage, "language code (nb, nn or en)")
	optionsCmd.Flags().StringArrayVarP(&optionsFilters, "filter", "f", nil, "filter as key=value, repeatable")
}

// parseFilters turns key=value pairs into a filter map. Later pairs win.
func parseFilters(pairs []string) (map[string]string, error) {
	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("filter %q must have the form key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}
