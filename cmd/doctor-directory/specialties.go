// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

var specialtiesCmd = &cobra.Command{
	Use:   "specialties",
	Short: "List the specialty taxonomy and filter control IDs",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-28s %s\n", "SPECIALTY", "CONTROL ID")
		for _, name := range types.Specialties {
			fmt.Fprintf(out, "%-28s %s\n", name, types.SpecialtyControlID(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(specialtiesCmd)
}
