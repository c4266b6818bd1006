package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "quickhire",
	Short:         "QuickHire AI maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCandidatesCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(evaluateCmd)
}
