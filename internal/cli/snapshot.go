package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/prodbar/internal/metrics"
	"github.com/ytget/prodbar/internal/termbar"
)

type snapshotOptions struct {
	format string
	seed   uint64
}

func addSnapshot(topLevel *cobra.Command, e *env) {
	so := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one snapshot of the selected queues and metrics",
		Long: `Pull metrics once for the selected queues and print them.

Examples:
  prodbar --store disk snapshot
  prodbar --store disk snapshot --format json
  prodbar --store disk snapshot --format yaml --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := termbar.ParseFormat(so.format)
			if err != nil {
				return err
			}

			c, err := openHeadless(e)
			if err != nil {
				return err
			}

			source := metrics.NewRandomSource()
			if so.seed != 0 {
				source = metrics.NewSeededRandomSource(so.seed)
			}

			state := c.store.State()
			snapshot := source.Pull(state.Queues)
			return termbar.Write(cmd.OutOrStdout(), format, c.catalog, state, snapshot, time.Now())
		},
	}

	formats := make([]string, 0, len(termbar.Formats))
	for _, f := range termbar.Formats {
		formats = append(formats, string(f))
	}
	cmd.Flags().StringVarP(&so.format, "format", "f", string(termbar.FormatTable),
		fmt.Sprintf("output format: %s", strings.Join(formats, ", ")))
	cmd.Flags().Uint64Var(&so.seed, "seed", 0, "seed the metrics source for repeatable output")
	topLevel.AddCommand(cmd)
}
