package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"

	"github.com/oceania-analytics/tradedash/internal/aggregate"
	"github.com/oceania-analytics/tradedash/internal/filter"
)

var (
	summaryYear      int
	summaryCountries []string
	summaryFormat    string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print KPI aggregates for a year and country selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}

		t, err := newProvider().Table()
		if err != nil {
			return err
		}

		if !slices.Contains(t.Years(), summaryYear) {
			return eris.Errorf("year %d not present in dataset (have %v)", summaryYear, t.Years())
		}

		sel := filter.AllCountries()
		if len(summaryCountries) > 0 {
			sel = filter.Countries(summaryCountries...)
		}

		view := filter.Filter(t, summaryYear, sel)
		sum, ok := aggregate.Summarize(view)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no data for this selection")
			return nil
		}

		out := cmd.OutOrStdout()
		switch summaryFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		case "yaml":
			data, err := yaml.Marshal(sum)
			if err != nil {
				return eris.Wrap(err, "summary: marshal yaml")
			}
			_, err = out.Write(data)
			return err
		case "table":
			printSummaryTable(out, sum, summaryYear)
			return nil
		default:
			return eris.Errorf("unknown format %q (want table, json or yaml)", summaryFormat)
		}
	},
}

// printSummaryTable renders the KPIs with English digit grouping.
func printSummaryTable(w io.Writer, sum aggregate.Summary, year int) {
	p := message.NewPrinter(language.English)
	whole := func(v float64) number.Formatter {
		return number.Decimal(v, number.MaxFractionDigits(0))
	}

	p.Fprintf(w, "Year %d, %d records\n", year, sum.Records)
	p.Fprintf(w, "  Export:           %v\n", whole(sum.Export))
	p.Fprintf(w, "  Import:           %v\n", whole(sum.Import))
	p.Fprintf(w, "  Total trade:      %v\n", whole(sum.Total))
	p.Fprintf(w, "  Trade balance:    %v\n", whole(sum.TradeBalance))
	p.Fprintf(w, "  GDP:              %v\n", whole(sum.GDP))
	p.Fprintf(w, "  Population:       %v\n", whole(sum.Population))
	p.Fprintf(w, "  Avg LPI:          %.2f\n", sum.AvgLPI)
	if sum.TradePerCapita != nil {
		p.Fprintf(w, "  Trade per capita: %v\n", number.Decimal(*sum.TradePerCapita, number.MaxFractionDigits(2)))
	} else {
		p.Fprintf(w, "  Trade per capita: n/a (population is zero)\n")
	}
}

func init() {
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "year to summarize (required)")
	summaryCmd.Flags().StringSliceVar(&summaryCountries, "countries", nil, "country names (default all)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "table", "output format: table, json or yaml")
	summaryCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(summaryCmd)
}
