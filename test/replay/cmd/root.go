package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "replay",
	Short: "Tools for replaying canned POP3 server transcripts",
}

func Execute() error {
	return rootCmd.Execute()
}
