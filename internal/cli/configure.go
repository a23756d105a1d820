package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ytget/prodbar/internal/catalog"
	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/model"
)

type configureOptions struct {
	queues   []string
	metrics  []string
	theme    string
	fontSize string
}

// choices are the answers of the configure form or flags, as strings
type choices struct {
	Queues   []string
	Metrics  []string
	Theme    string
	FontSize string
}

func addConfigure(topLevel *cobra.Command, e *env) {
	co := &configureOptions{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Choose queues, metrics and appearance",
		Long: `Choose which queues and metrics the bar shows, and its theme and font
size. Without flags an interactive form is shown; with flags only the given
settings change.

Examples:
  prodbar --store disk configure
  prodbar --store disk configure --queues Support,VIP --metrics waiting,aht
  prodbar --store disk configure --theme light --font-size large`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openHeadless(e)
			if err != nil {
				return err
			}

			current := currentChoices(c)
			next := current
			if anyFlagChanged(cmd, "queues", "metrics", "theme", "font-size") {
				if cmd.Flags().Changed("queues") {
					next.Queues = co.queues
				}
				if cmd.Flags().Changed("metrics") {
					next.Metrics = co.metrics
				}
				if cmd.Flags().Changed("theme") {
					next.Theme = co.theme
				}
				if cmd.Flags().Changed("font-size") {
					next.FontSize = co.fontSize
				}
			} else {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return barerrors.New(barerrors.ErrConfig,
						"configure needs a terminal for the form",
						"pass --queues, --metrics, --theme or --font-size")
				}
				if err := configureForm(c.catalog, &next).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			warnings, err := applyChoices(c, current, next)
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			if err != nil {
				return err
			}
			printChoices(cmd.OutOrStdout(), currentChoices(c))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&co.queues, "queues", nil, fmt.Sprintf("queues to show, 1 to %d", model.MaxQueues))
	cmd.Flags().StringSliceVar(&co.metrics, "metrics", nil, fmt.Sprintf("metric ids to show, 1 to %d", model.MaxMetrics))
	cmd.Flags().StringVar(&co.theme, "theme", "", "theme: dark or light")
	cmd.Flags().StringVar(&co.fontSize, "font-size", "", "font size: normal or large")
	topLevel.AddCommand(cmd)
}

func anyFlagChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func currentChoices(c *core) choices {
	state := c.store.State()
	out := choices{
		Theme:    string(c.prefs.GetTheme()),
		FontSize: string(c.prefs.GetFontSize()),
	}
	for _, q := range state.Queues {
		out.Queues = append(out.Queues, string(q))
	}
	for _, m := range state.Metrics {
		out.Metrics = append(out.Metrics, string(m))
	}
	return out
}

// configureForm builds the interactive form over ch
func configureForm(cat *catalog.Catalog, ch *choices) *huh.Form {
	queueOptions := make([]huh.Option[string], 0, len(cat.Queues()))
	for _, q := range cat.Queues() {
		queueOptions = append(queueOptions, huh.NewOption(string(q), string(q)))
	}

	metricOptions := make([]huh.Option[string], 0, len(cat.Metrics()))
	for _, m := range cat.Metrics() {
		metricOptions = append(metricOptions, huh.NewOption(m.Label, string(m.ID)))
	}

	atLeastOne := func(kind string) func([]string) error {
		return func(v []string) error {
			if len(v) == 0 {
				return fmt.Errorf("select at least one %s", kind)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Queues").
				Description(fmt.Sprintf("Up to %d", model.MaxQueues)).
				Options(queueOptions...).
				Limit(model.MaxQueues).
				Validate(atLeastOne("queue")).
				Value(&ch.Queues),
			huh.NewMultiSelect[string]().
				Title("Metrics").
				Description(fmt.Sprintf("Up to %d", model.MaxMetrics)).
				Options(metricOptions...).
				Limit(model.MaxMetrics).
				Validate(atLeastOne("metric")).
				Value(&ch.Metrics),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", string(model.ThemeDark)),
					huh.NewOption("Light", string(model.ThemeLight)),
				).
				Value(&ch.Theme),
			huh.NewSelect[string]().
				Title("Font size").
				Options(
					huh.NewOption("Normal", string(model.FontNormal)),
					huh.NewOption("Large", string(model.FontLarge)),
				).
				Value(&ch.FontSize),
		),
	)
}

// applyChoices writes what differs between current and next. Persistence
// failures come back as warnings; anything else stops with an error.
func applyChoices(c *core, current, next choices) ([]string, error) {
	var warnings []string
	check := func(err error) error {
		if err == nil {
			return nil
		}
		if barerrors.IsWarning(err) {
			warnings = append(warnings, err.Error())
			return nil
		}
		return err
	}

	if !equalStrings(current.Queues, next.Queues) {
		ids := make([]model.QueueID, 0, len(next.Queues))
		for _, q := range next.Queues {
			ids = append(ids, model.QueueID(strings.TrimSpace(q)))
		}
		if _, err := c.store.ReplaceQueues(ids); check(err) != nil {
			return warnings, err
		}
	}

	if !equalStrings(current.Metrics, next.Metrics) {
		ids := make([]model.MetricID, 0, len(next.Metrics))
		for _, m := range next.Metrics {
			ids = append(ids, model.MetricID(strings.TrimSpace(m)))
		}
		if _, err := c.store.ReplaceMetrics(ids); check(err) != nil {
			return warnings, err
		}
	}

	if next.Theme != current.Theme {
		theme := model.Theme(strings.ToLower(next.Theme))
		if theme != model.ThemeDark && theme != model.ThemeLight {
			return warnings, barerrors.New(barerrors.ErrConfig,
				fmt.Sprintf("unknown theme %q", next.Theme), "use dark or light")
		}
		if err := check(c.prefs.SetTheme(theme)); err != nil {
			return warnings, err
		}
	}

	if next.FontSize != current.FontSize {
		size := model.FontSize(strings.ToLower(next.FontSize))
		if size != model.FontNormal && size != model.FontLarge {
			return warnings, barerrors.New(barerrors.ErrConfig,
				fmt.Sprintf("unknown font size %q", next.FontSize), "use normal or large")
		}
		if err := check(c.prefs.SetFontSize(size)); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func printChoices(w io.Writer, ch choices) {
	fmt.Fprintf(w, "queues:    %s\n", strings.Join(ch.Queues, ", "))
	fmt.Fprintf(w, "metrics:   %s\n", strings.Join(ch.Metrics, ", "))
	fmt.Fprintf(w, "theme:     %s\n", ch.Theme)
	fmt.Fprintf(w, "font size: %s\n", ch.FontSize)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
