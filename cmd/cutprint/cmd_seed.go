package main

import (
	"fmt"

	"github.com/piwi3910/cutprint/internal/project"
	"github.com/piwi3910/cutprint/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed <project.json>...",
	Short: "Load project files into the PostgreSQL source",
	Long: `Load project files into the PostgreSQL source.

The tables are created when missing and each project tree is replaced as a
whole. Uses source.database_url (or DATABASE_URL).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pg, err := source.NewPostgres(ctx, cfg.Source.DatabaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	for _, path := range args {
		p, err := project.LoadProject(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		if err := pg.SaveProject(ctx, p); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
		logger.Info("project seeded", zap.String("id", p.ID), zap.String("path", path), zap.Int("units", len(p.Units)))
	}
	return nil
}
