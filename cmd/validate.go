package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceania-analytics/tradedash/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the dataset and report what it contains",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}

		t, err := newProvider().Table()
		if err != nil {
			var serr *dataset.SchemaError
			if errors.As(err, &serr) {
				return fmt.Errorf("schema check failed: %w", serr)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "records:   %d\n", t.Len())
		if years := t.Years(); len(years) > 0 {
			fmt.Fprintf(out, "years:     %d (%d to %d)\n", len(years), years[0], years[len(years)-1])
		} else {
			fmt.Fprintf(out, "years:     0\n")
		}
		fmt.Fprintf(out, "countries: %d\n", len(t.Countries()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
