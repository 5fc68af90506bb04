package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/bags/memory"
	"github.com/agentstation/databag/pkg/differ"
	pkgerrors "github.com/agentstation/databag/pkg/errors"
	"github.com/agentstation/databag/pkg/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.yaml> <new.yaml>",
	Short: "Classify the keys of two bag views as added, changed, or deleted",
	Long: `Diff two bag views.

Each input file is a flat YAML mapping of string keys to string values, as a
peer bag would hold them. The old view is installed as the snapshot and the
new view is classified against it, exactly as a change notification would
be.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldView, err := loadView(args[0])
		if err != nil {
			return err
		}
		newView, err := loadView(args[1])
		if err != nil {
			return err
		}

		store, err := memory.New(memory.WithRelations(1))
		if err != nil {
			return err
		}
		engine := differ.New(snapshot.New(store))

		ctx := cmd.Context()
		if _, err := engine.Compute(ctx, 1, oldView); err != nil {
			return err
		}
		delta, err := engine.Compute(ctx, 1, newView)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !delta.HasChanges() {
			fmt.Fprintln(out, "no changes")
			return nil
		}
		for _, key := range delta.Added {
			fmt.Fprintf(out, "+ %s=%q\n", key, newView[key])
		}
		for _, key := range delta.Changed {
			fmt.Fprintf(out, "~ %s=%q (was %q)\n", key, newView[key], oldView[key])
		}
		for _, key := range delta.Deleted {
			fmt.Fprintf(out, "- %s (was %q)\n", key, oldView[key])
		}
		return nil
	},
}

// loadView reads a flat YAML mapping as a bag view.
func loadView(path string) (bags.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading view: %w", err)
	}
	var view bags.View
	if err := yaml.Unmarshal(data, &view); err != nil {
		return nil, pkgerrors.WrapParse("yaml", path, err)
	}
	if view == nil {
		view = bags.View{}
	}
	return view, nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
