package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cutprint/internal/importer"
	"github.com/piwi3910/cutprint/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importOutput string
	importClient string
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Convert a spreadsheet part list into a project file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Project file to write (default: <file>.json)")
	importCmd.Flags().StringVar(&importClient, "client", "", "Client name stored on the project")
}

func runImport(cmd *cobra.Command, args []string) error {
	result := importer.ImportFile(args[0])
	for _, w := range result.Warnings {
		logger.Warn(w, zap.String("file", args[0]))
	}
	for _, e := range result.Errors {
		logger.Error(e, zap.String("file", args[0]))
	}
	if result.PartCount() == 0 {
		return fmt.Errorf("no parts imported from %s (%d errors)", args[0], len(result.Errors))
	}

	p := result.Project
	p.ClientName = importClient

	out := importOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
	}
	if err := project.SaveProject(out, p); err != nil {
		return err
	}

	logger.Info("project imported",
		zap.String("path", out),
		zap.Int("units", len(p.Units)),
		zap.Int("parts", result.PartCount()),
		zap.Int("errors", len(result.Errors)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
