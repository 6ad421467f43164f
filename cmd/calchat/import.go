package main

import (
	"fmt"
	"os"
	"strings"

	"calchat/internal/importer"

	"github.com/spf13/cobra"
)

var (
	importFormat string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Push a date-to-task file to the server",
	Long: `Read a JSON object or YAML mapping of YYYY-MM-DD dates to task text
and store each task on the server. Days that already have a task are
replaced; new days are created.`,
	Example: `  calchat import tasks.yaml
  calchat import --dry-run tasks.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "file format: "+strings.Join(importer.SupportedFormats(), " or ")+" (default from extension)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show what would change without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	format := importFormat
	if format == "" {
		format = importer.FormatFromPath(path)
	}
	parser := importer.GetParser(format)
	if parser == nil {
		return fmt.Errorf("unknown format for %s: use --format %s", path, strings.Join(importer.SupportedFormats(), " or "))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	tasks, err := parser.Parse(f)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return nil
	}

	_, client, err := setupCLI(cmd)
	if err != nil {
		return err
	}

	result := importer.Import(cmd.Context(), client, tasks, importDryRun)

	out := cmd.OutOrStdout()
	if importDryRun {
		fmt.Fprintln(out, "Dry run, nothing was written.")
	}
	fmt.Fprintf(out, "Created: %d  Updated: %d  Unchanged: %d  Skipped: %d\n",
		result.Created, result.Updated, result.Unchanged, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
	}

	if failed := len(result.Errors) - result.Skipped; failed > 0 {
		return fmt.Errorf("%d tasks failed to import", failed)
	}
	return nil
}
