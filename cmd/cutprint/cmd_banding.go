package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/project"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/spf13/cobra"
)

var (
	bandingWaste float64
	bandingJSON  bool
)

var bandingCmd = &cobra.Command{
	Use:   "banding <project.json>",
	Short: "Total the edge banding tape and grooves of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runBanding,
}

func init() {
	bandingCmd.Flags().Float64Var(&bandingWaste, "waste", -1, "Waste percentage (default: print.waste_percent)")
	bandingCmd.Flags().BoolVar(&bandingJSON, "json", false, "Print the summary as JSON")
}

func runBanding(cmd *cobra.Command, args []string) error {
	waste := cfg.Print.WastePercent
	if bandingWaste != -1 {
		if !model.ValidWastePercent(bandingWaste) {
			return fmt.Errorf("--waste must be between 0 and 100, got %v", bandingWaste)
		}
		waste = bandingWaste
	}

	p, err := project.LoadProject(args[0])
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	s := report.CalculateBanding(report.Aggregate(p), waste)

	if bandingJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tPART\tSIZE\tQTY\tEDGES\tTAPE (m)\tGROOVE (m)")
	for _, pb := range s.Parts {
		fmt.Fprintf(tw, "%s\t%s\t%sx%s\t%d\t%s\t%s\t%s\n",
			pb.UnitLabel, pb.Name, report.FormatCM(pb.Width), report.FormatCM(pb.Height),
			pb.Quantity, pb.Marks, pb.TapeTotalM.StringFixed(2), pb.GrooveTotalM.StringFixed(2))
	}
	tw.Flush()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nTape:   %s m (%s m incl. %s%% waste)\n", s.TapeLengthM.StringFixed(2), s.TapeWithWasteM.StringFixed(2), report.FormatCM(s.WastePercent))
	fmt.Fprintf(out, "Groove: %s m\n", s.GrooveLengthM.StringFixed(2))
	fmt.Fprintf(out, "Pieces: %d (%d taped edges, %d grooved edges)\n", s.PieceCount, s.TapedEdgeCount, s.GroovedEdgeCount)
	for _, code := range s.UnmatchedEdgeCodes {
		fmt.Fprintf(out, "WARNING: unknown edge code %q\n", code)
	}
	return nil
}
