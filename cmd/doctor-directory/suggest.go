// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doctor-directory/internal/directory"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Print up to three doctor names containing text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadRecords(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		directory.FormatSuggestions(directory.Suggest(store.Records(), strings.Join(args, " ")), cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
