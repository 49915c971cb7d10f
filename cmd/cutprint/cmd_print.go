package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/cutprint/internal/export"
	"github.com/piwi3910/cutprint/internal/project"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	printFormat string
	printOutput string
)

var printCmd = &cobra.Command{
	Use:   "print <project.json>",
	Short: "Render a project file as a cut list",
	Long: `Render a project file as a cut list.

Formats:
  json    grouped cut list (use -o - for stdout)
  pdf     A4 cut sheets with an edge banding summary
  xlsx    Excel workbook, one sheet per section
  labels  QR labels, one per piece
  dxf     every piece as a rectangle, edges on TAPE/GROOVE/PANEL layers`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVarP(&printFormat, "format", "f", "pdf", "Output format: json, pdf, xlsx, labels, dxf")
	printCmd.Flags().StringVarP(&printOutput, "output", "o", "", "Output file (default: <project>-cutlist.<ext>)")
}

var formatExt = map[string]string{
	"json":   ".json",
	"pdf":    ".pdf",
	"xlsx":   ".xlsx",
	"labels": ".pdf",
	"dxf":    ".dxf",
}

func runPrint(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(printFormat)
	ext, ok := formatExt[format]
	if !ok {
		return fmt.Errorf("unknown format %q", printFormat)
	}

	p, err := project.LoadProject(args[0])
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	list := report.Aggregate(p)
	summary := report.CalculateBanding(list, cfg.Print.WastePercent)
	for _, code := range summary.UnmatchedEdgeCodes {
		logger.Warn("unknown edge code, printed without marks", zap.String("code", code))
	}

	out := printOutput
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		suffix := "-cutlist"
		if format == "labels" {
			suffix = "-labels"
		}
		out = filepath.Join(filepath.Dir(args[0]), base+suffix+ext)
	}

	opts := export.Options{FontPath: cfg.Print.FontPath, GeneratedAt: time.Now()}
	switch format {
	case "json":
		if out == "-" {
			return export.WriteJSON(cmd.OutOrStdout(), list)
		}
		err = export.ExportJSON(out, list)
	case "pdf":
		opts.Banding = &summary
		err = export.ExportPDF(out, list, opts)
	case "xlsx":
		err = export.ExportXLSX(out, list)
	case "labels":
		err = export.ExportLabels(out, list, opts)
	case "dxf":
		err = export.ExportDXF(out, list)
	}
	if err != nil {
		return err
	}

	logger.Info("cut list written",
		zap.String("format", format),
		zap.String("path", out),
		zap.Int("parts", len(list.Parts())),
	)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
