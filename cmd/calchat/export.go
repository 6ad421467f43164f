package main

import (
	"fmt"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/fsutil"
	"calchat/internal/reports"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [YYYY-MM]",
	Short: "Generate a month report",
	Long: `Fetch one month of tasks from the server and print it as Markdown,
JSON or a standalone HTML page. The month defaults to the current one.`,
	Example: `  calchat export
  calchat export 2024-05 --format json
  calchat export 2024-05 -f html -o may.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "output format: markdown, json or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	month := calendar.MonthOf(time.Now())
	if len(args) == 1 {
		m, err := calendar.ParseMonth(args[0])
		if err != nil {
			return err
		}
		month = m
	}

	_, client, err := setupCLI(cmd)
	if err != nil {
		return err
	}

	report, err := reports.NewGenerator(client).GenerateMonth(cmd.Context(), month)
	if err != nil {
		return err
	}
	out, err := reports.Format(report, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := fsutil.WriteFileAtomic(exportOutput, out, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", exportOutput)
	return nil
}
