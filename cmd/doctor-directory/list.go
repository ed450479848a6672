// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doctor-directory/internal/directory"
	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List doctors matching a filter state",
	Long: `List loads the doctor list and prints the doctors matching the filter state.
The state is seeded from --query (a query string or a full URL) and then
overridden by --search, --mode, --specialty, and --sort.

Specialties match if a doctor has any of the selected ones. Fees sort
ascending; experience sorts descending.`,
	Example: `  doctor-directory list --specialty Dentist --sort fees
  doctor-directory list --query "?mode=In+Clinic&specialty=ENT" --format cards`,
	RunE: runList,
}

func init() {
	addListFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "seed filter state from a query string or URL")
	cmd.Flags().String("search", "", "case-insensitive name substring")
	cmd.Flags().String("mode", "", "consultation mode: \"Video Consult\" or \"In Clinic\"")
	cmd.Flags().StringArray("specialty", nil, "specialty to include (repeatable)")
	cmd.Flags().String("sort", "", "sort order: fees or experience")
	cmd.Flags().String("format", string(directory.OutputTable), "output format: table, cards, json, yaml")
	cmd.Flags().Bool("show-query", false, "print the canonical query string after the results")
}

// listQuery builds the query store for list from --query and the override
// flags.
func listQuery(cmd *cobra.Command) (*urlstate.Query, error) {
	raw, _ := cmd.Flags().GetString("query")
	q, err := urlstate.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	values := q.Values()
	flags := cmd.Flags()
	if flags.Changed("search") {
		v, _ := flags.GetString("search")
		values.Set(urlstate.KeySearch, v)
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		if v != "" && !slices.Contains(types.Modes, v) {
			return nil, fmt.Errorf("unknown mode %q: use %q or %q", v, types.ModeVideoConsult, types.ModeInClinic)
		}
		values.Set(urlstate.KeyMode, v)
	}
	if flags.Changed("specialty") {
		v, _ := flags.GetStringArray("specialty")
		values[urlstate.KeySpecialty] = v
	}
	if flags.Changed("sort") {
		v, _ := flags.GetString("sort")
		if opt := types.SortOption(v); opt != types.SortNone && !opt.Known() {
			return nil, fmt.Errorf("unknown sort option %q: use %s or %s", v, types.SortFees, types.SortExperience)
		}
		values.Set(urlstate.KeySort, v)
	}
	for k, v := range values {
		if len(v) == 0 || (len(v) == 1 && v[0] == "") {
			delete(values, k)
		}
	}
	q.Replace(values)
	return q, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := listQuery(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	showQuery, _ := cmd.Flags().GetBool("show-query")

	store, err := loadRecords(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	e := directory.New(store, q, directory.WithPolicy(cfg.URL.Policy))
	view := e.View()
	out := cmd.OutOrStdout()
	if err := directory.Write(out, directory.OutputFormat(format), view); err != nil {
		return err
	}
	if showQuery {
		fmt.Fprintf(out, "?%s\n", view.Query)
	}
	return nil
}
