// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/doctor-directory/internal/catalog"
	"github.com/pdiddy/doctor-directory/internal/source"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local snapshot catalog",
	Long: `The catalog stores snapshots of the doctor list in a SQLite database so a
directory can be browsed offline with --source sqlite:<path>. Importing a
payload identical to the latest snapshot is skipped.`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [location...]",
	Short: "Load sources and store each as a snapshot",
	Long: `Import reads each location (the configured source when none is given)
concurrently, then stores each payload as a snapshot in order. Nothing is
written if any read fails.`,
	RunE: runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE:  runCatalogList,
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}

// importConcurrency bounds how many sources catalog import reads at once.
const importConcurrency = 4

func runCatalogImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	locations := args
	if len(locations) == 0 {
		locations = []string{cfg.Source.Location}
	}

	ctx := cmd.Context()
	labels := make([]string, len(locations))
	loads := make([][]types.Doctor, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			c := cfg
			c.Source.Location = loc
			src, err := source.Open(gctx, c)
			if err != nil {
				return err
			}
			labels[i] = loc
			if loc == "" {
				labels[i] = types.DefaultSourceURL
			}
			docs, err := src.Load(gctx)
			if err != nil {
				return fmt.Errorf("loading %s: %w", labels[i], err)
			}
			loads[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer cat.Close()

	out := cmd.OutOrStdout()
	for i, docs := range loads {
		res, err := cat.Import(ctx, labels[i], docs)
		if err != nil {
			return err
		}
		if res.Skipped {
			fmt.Fprintf(out, "%s: unchanged, latest snapshot %s already holds these %d record(s)\n", labels[i], res.Snapshot.ID, res.Snapshot.Records)
			continue
		}
		fmt.Fprintf(out, "%s: imported %d record(s) as snapshot %s into %s\n", labels[i], res.Snapshot.Records, res.Snapshot.ID, cat.Path())
	}
	return nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer cat.Close()

	snaps, err := cat.Snapshots(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, "no snapshots")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-20s  %7s  %-16s  %s\n", "ID", "IMPORTED", "RECORDS", "FINGERPRINT", "SOURCE")
	for _, s := range snaps {
		fmt.Fprintf(out, "%-36s  %-20s  %7d  %-16s  %s\n",
			s.ID, s.ImportedAt.Local().Format(time.DateTime), s.Records, s.Fingerprint, s.Source)
	}
	return nil
}
