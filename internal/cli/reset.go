package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func addReset(topLevel *cobra.Command, e *env) {
	var appearance bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Return to the default queues and metrics",
		Long: `Erase the stored selection so the default queues and metrics are shown.
With --appearance the theme and font size are reset too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openHeadless(e)
			if err != nil {
				return err
			}

			_, err = c.store.Reset()
			if appearance {
				err = errors.Join(err, c.prefs.Reset())
			}
			if err != nil {
				return err
			}

			printChoices(cmd.OutOrStdout(), currentChoices(c))
			return nil
		},
	}
	cmd.Flags().BoolVar(&appearance, "appearance", false, "also reset theme and font size")
	topLevel.AddCommand(cmd)
}
