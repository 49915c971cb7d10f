package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/cutprint/internal/edgemarks"
	"github.com/spf13/cobra"
)

var marksCmd = &cobra.Command{
	Use:   "marks <code>...",
	Short: "Show how edge codes resolve to tape and groove marks",
	Example: `  cutprint marks O LM-يمين '\M'
  cutprint marks --rules`,
	RunE: runMarks,
}

var marksRules bool

func init() {
	marksCmd.Flags().BoolVar(&marksRules, "rules", false, "List the resolver rules in match order")
}

func runMarks(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if marksRules {
		fmt.Fprintln(tw, "#\tRULE\tTOP\tBOTTOM\tLEFT\tRIGHT")
		for i, r := range edgemarks.Rules() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, r.Name, r.Marks.Top, r.Marks.Bottom, r.Marks.Left, r.Marks.Right)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("at least one edge code is required")
	}
	fmt.Fprintln(tw, "CODE\tRULE\tTOP\tBOTTOM\tLEFT\tRIGHT\tEDGES")
	for _, code := range args {
		rule, m := edgemarks.Explain(code)
		if rule == "" {
			rule = "-"
			if !edgemarks.Recognized(code) {
				rule = "(unknown)"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", code, rule, m.Top, m.Bottom, m.Left, m.Right, m)
	}
	return nil
}
