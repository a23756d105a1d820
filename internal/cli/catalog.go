package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ytget/prodbar/internal/catalog"
)

func addCatalog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the queues and metrics that can be selected",
		Args:  cobra.NoArgs,
		// no config or storage needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			writeCatalog(cmd.OutOrStdout(), catalog.New())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func writeCatalog(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(w, "Queues:")
	for _, q := range cat.Queues() {
		fmt.Fprintf(w, "  %s\n", q)
	}
	for _, g := range cat.Groups() {
		fmt.Fprintf(w, "\n%s:\n", g.Name)
		for _, m := range g.Metrics {
			fmt.Fprintf(w, "  %-16s %s\n", m.ID, m.Label)
		}
	}
}
