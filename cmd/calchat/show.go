package main

import (
	"fmt"

	"calchat/internal/api"
	"calchat/internal/calendar"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show YYYY-MM-DD",
	Short: "Print the task for one day",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if _, err := calendar.ParseDate(args[0]); err != nil {
		return err
	}

	_, client, err := setupCLI(cmd)
	if err != nil {
		return err
	}

	text, err := client.GetTask(cmd.Context(), args[0])
	if err != nil && !api.IsNotFound(err) {
		return err
	}
	if text == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No task for %s.\n", args[0])
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
