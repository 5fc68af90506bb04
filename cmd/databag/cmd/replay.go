package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/databag/internal/scenario"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a recorded bag exchange and show the raised events",
	Long: `Replay a recorded bag exchange against an in-memory bag store.

The scenario file names a flavor, the acting peer application, and a
sequence of peer-bag mutations. Each step is applied and notified in order;
the events a provider would raise are printed per step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		results, err := scenario.Run(cmd.Context(), sc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := 0
		for _, result := range results {
			fmt.Fprintf(out, "step %d:\n", result.Step+1)
			if len(result.Events) == 0 {
				fmt.Fprintln(out, "  no events")
				continue
			}
			total += len(result.Events)
			for _, ev := range result.Events {
				fmt.Fprintf(out, "  %s relation=%s app=%s", ev.Kind, ev.Relation, sc.App)
				for _, key := range result.PeerView.Keys() {
					fmt.Fprintf(out, " %s=%q", key, result.PeerView[key])
				}
				fmt.Fprintln(out)
			}
		}
		if total == 0 {
			fmt.Fprintln(out, "no events raised")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
