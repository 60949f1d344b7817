package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/factory"
	"github.com/warp/depreciation-engine/internal/logger"
)

// --- Schedule Command ---

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute a depreciation schedule from a JSON request file",
	Long: `Reads a request in the same JSON schema as POST /api/schedules and prints
the merged period table and the net-book-value view.

Examples:
  depreciation schedule -f assets.json
  depreciation schedule -f assets.json --as-of 2025-12-31 --currency EUR
  cat assets.json | depreciation schedule -f - --csv out.csv --detail`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := scheduleOptions{}
		opts.file, _ = cmd.Flags().GetString("file")
		opts.asOf, _ = cmd.Flags().GetString("as-of")
		opts.currency, _ = cmd.Flags().GetString("currency")
		opts.csvPath, _ = cmd.Flags().GetString("csv")
		opts.detail, _ = cmd.Flags().GetBool("detail")
		if opts.currency == "" && cfg != nil {
			opts.defaultCurrency = cfg.Report.Currency
		}
		return runSchedule(opts, cmd.InOrStdin(), cmd.OutOrStdout(), logger.Get())
	},
}

func init() {
	scheduleCmd.Flags().StringP("file", "f", "", `request JSON file ("-" for stdin)`)
	scheduleCmd.Flags().String("as-of", "", "provision date YYYY-MM-DD (overrides provision_as_of)")
	scheduleCmd.Flags().String("currency", "", "display currency code (overrides currency)")
	scheduleCmd.Flags().String("csv", "", "also write the CSV export to this path")
	scheduleCmd.Flags().Bool("detail", false, "print per-asset schedules and export the detail CSV layout")
	scheduleCmd.MarkFlagRequired("file")
}

type scheduleOptions struct {
	file            string
	asOf            string
	currency        string
	defaultCurrency string
	csvPath         string
	detail          bool
}

func runSchedule(opts scheduleOptions, stdin io.Reader, out io.Writer, log logrus.FieldLogger) error {
	data, err := readInput(opts.file, stdin)
	if err != nil {
		return err
	}

	var rj factory.RequestJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.file, err)
	}
	if opts.asOf != "" {
		rj.ProvisionAsOf = opts.asOf
	}
	switch {
	case opts.currency != "":
		rj.Currency = opts.currency
	case rj.Currency == "":
		rj.Currency = opts.defaultCurrency
	}

	batch, err := factory.NewAssetFactory().FromJSON(rj)
	if err != nil {
		return err
	}

	schedules := depreciation.BuildSchedules(batch.Assets)
	report := depreciation.Aggregate(schedules)
	log.WithFields(logrus.Fields{
		"assets":  len(schedules),
		"columns": len(report.Columns),
		"total":   report.GrandTotal.String(),
	}).Debug("schedule computed")

	if err := renderReport(out, report, batch.Currency); err != nil {
		return err
	}
	if opts.detail {
		if err := renderSchedules(out, schedules, batch.Currency); err != nil {
			return err
		}
	}
	renderWarnings(out, schedules)

	if opts.csvPath != "" {
		if err := writeCSVFile(opts.csvPath, schedules, report, opts.detail); err != nil {
			return err
		}
		log.WithField("path", opts.csvPath).Info("CSV written")
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeCSVFile(path string, schedules []depreciation.NamedSchedule, report depreciation.Report, detail bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if detail {
		err = depreciation.WriteDetailCSV(f, schedules)
	} else {
		err = depreciation.WriteCSV(f, report)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --- Lives Command ---

var livesCmd = &cobra.Command{
	Use:   "lives",
	Short: "Print the suggested useful-life table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderLives(cmd.OutOrStdout(), factory.UsefulLives())
	},
}
