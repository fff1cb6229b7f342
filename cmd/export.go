package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kousu/aggregate"
	"kousu/config"
	"kousu/dataset"
	"kousu/output"
)

var (
	exportView   string
	exportMode   string
	exportTerm   int
	exportYear   int
	exportMonth  int
	exportFrom   string
	exportTo     string
	exportFormat string
	exportOutput string
	exportCats   []string
	exportWorker string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an aggregate pivot to a CSV or Excel file",
	Long: `Build the same pivot the dashboard charts and write it as an axis × series
matrix with a trailing total row.

Views: graph (months × categories), worker (workers × categories),
totals (one total per category).`,
	Example: `
  # Current fiscal term, categories per month, Excel
  kousu export --view graph --mode term --term 2024 --format excel --output ./工数2024.xlsx

  # One month per worker, CSV
  kousu export --view worker --mode month --year 2024 --month 6 --output ./作業者202406.csv

  # Range totals per category
  kousu export --view totals --mode range --from 2024-05 --to 2024-08 --output ./合計.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		sel, err := buildSelection(exportMode, exportTerm, exportYear, exportMonth, exportFrom, exportTo)
		if err != nil {
			return err
		}
		if len(exportCats) > 0 {
			sel = sel.WithCategories(exportCats...)
		}
		if exportWorker != "" {
			sel = sel.WithWorker(exportWorker)
		}

		entries, err := dataset.LoadWork(cfg.WorkPath())
		if err != nil {
			return err
		}

		var pivot *aggregate.Pivot
		switch strings.TrimSpace(exportView) {
		case "", "graph":
			pivot = aggregate.BuildCategoryPivot(entries, sel)
			if aggregate.InspectionTriggered(sel) {
				inspections, err := dataset.LoadInspections(cfg.InspectionPath())
				if err != nil {
					return err
				}
				aggregate.AppendInspectionBreakdown(pivot, inspections, sel)
			}
		case "worker":
			pivot = aggregate.BuildWorkerPivot(entries, sel)
		case "totals":
			pivot = aggregate.BuildCategoryTotals(entries, sel)
		default:
			return fmt.Errorf("invalid view %q (supported: graph|worker|totals)", exportView)
		}

		writer, err := output.WriterForFormat(exportFormat)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, sel.Label(), pivot); err != nil {
			return err
		}

		fmt.Printf("Export written: %s\n", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportView, "view", "graph", "Pivot view: graph|worker|totals")
	exportCmd.Flags().StringVar(&exportMode, "mode", "term", "Window mode: term|month|range")
	exportCmd.Flags().IntVar(&exportTerm, "term", 0, "Fiscal-term start year (default: the term containing today)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Calendar year for --mode month")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "Calendar month for --mode month")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start month, format YYYY-MM")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end month, format YYYY-MM")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv|excel")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringArrayVar(&exportCats, "category", nil, "Category filter (repeatable)")
	exportCmd.Flags().StringVar(&exportWorker, "worker", "", "Single-worker filter")

	_ = exportCmd.MarkFlagRequired("output")
}

func buildSelection(mode string, term, year, month int, from, to string) (aggregate.Selection, error) {
	switch strings.TrimSpace(mode) {
	case "", "term":
		if term == 0 {
			term = aggregate.TermStartYear(time.Now())
		}
		return aggregate.NewTermSelection(term)
	case "month":
		return aggregate.NewMonthSelection(year, month)
	case "range":
		fromValue, err := time.ParseInLocation("2006-01", strings.TrimSpace(from), time.Local)
		if err != nil {
			return aggregate.Selection{}, fmt.Errorf("invalid --from value %q (expected YYYY-MM)", from)
		}
		toValue, err := time.ParseInLocation("2006-01", strings.TrimSpace(to), time.Local)
		if err != nil {
			return aggregate.Selection{}, fmt.Errorf("invalid --to value %q (expected YYYY-MM)", to)
		}
		return aggregate.NewRangeSelection(fromValue, toValue)
	default:
		return aggregate.Selection{}, fmt.Errorf("invalid mode %q (supported: term|month|range)", mode)
	}
}
