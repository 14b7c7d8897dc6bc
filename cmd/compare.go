package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statcompare/internal/compare"
	"github.com/sells-group/statcompare/internal/efficiency"
	"github.com/sells-group/statcompare/internal/export"
	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

// compareReport is the structured form of both comparison views.
type compareReport struct {
	A      statsapi.EntityID           `json:"a" yaml:"a"`
	B      statsapi.EntityID           `json:"b" yaml:"b"`
	Radar  *compare.RadarSeries        `json:"radar,omitempty" yaml:"radar,omitempty"`
	Bars   *compare.BarSeries          `json:"bars,omitempty" yaml:"bars,omitempty"`
	Errors map[compare.ViewKind]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

var compareCmd = &cobra.Command{
	Use:   "compare [entity-a entity-b]",
	Short: "Compare two entities on the radar and mirrored bar views",
	Long:  "Loads the radar and mirrored bar views for a pair. With no arguments the configured default teams are compared; with --legacy the configured default players are used when the backend lists them.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected zero or two entities, got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		legacy, _ := cmd.Flags().GetBool("legacy")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		client := newClient()
		w := cmd.OutOrStdout()

		if legacy {
			pair, err := resolvePlayerPair(ctx, client, args, cfg.Compare.DefaultPlayers)
			if err != nil {
				return err
			}
			return runLegacyCompare(ctx, w, format, client, pair)
		}

		pair, err := resolveTeamPair(args, cfg.Compare.DefaultPair)
		if err != nil {
			return err
		}

		store, err := newCompareStore(client)
		if err != nil {
			return err
		}
		store.SetPair(ctx, pair.A(), pair.B())
		store.Wait()

		report := buildCompareReport(store)
		if err := printCompare(w, format, report); err != nil {
			return err
		}

		if xlsxPath != "" {
			panel := efficiency.New(client)
			panel.Select(ctx, pair.A())
			panel.Wait()

			if err := export.WriteWorkbook(xlsxPath, pair, store.RadarSeries(), store.BarSeries(), panel.View().Points); err != nil {
				return err
			}
			zap.L().Info("comparison exported", zap.String("path", xlsxPath))
		}

		if len(report.Errors) == 2 {
			return eris.Errorf("compare: no view loaded for %s vs %s", pair.A(), pair.B())
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().Bool("legacy", false, "use the legacy /compare endpoint (player comparison only)")
	compareCmd.Flags().String("xlsx", "", "also write the views to this xlsx file")
	rootCmd.AddCommand(compareCmd)
}

func entityArg(s string) statsapi.EntityID {
	return statsapi.EntityID(strings.TrimSpace(s))
}

// resolveTeamPair returns the pair named by args, or the configured teams.
func resolveTeamPair(args, preferred []string) (compare.Pair, error) {
	if len(args) == 2 {
		return compare.Pair{entityArg(args[0]), entityArg(args[1])}, nil
	}
	if len(preferred) != 2 {
		return compare.Pair{}, eris.New("compare: no default pair configured")
	}
	return compare.Pair{entityArg(preferred[0]), entityArg(preferred[1])}, nil
}

// resolvePlayerPair returns the pair named by args, or the configured players
// with each missing one replaced from the backend's player list.
func resolvePlayerPair(ctx context.Context, client statsapi.Client, args, preferred []string) (compare.Pair, error) {
	if len(args) == 2 {
		return compare.Pair{entityArg(args[0]), entityArg(args[1])}, nil
	}

	prefs := make([]statsapi.EntityID, 0, len(preferred))
	for _, p := range preferred {
		prefs = append(prefs, entityArg(p))
	}

	list, err := client.ListEntities(ctx)
	if err != nil {
		if len(prefs) == 2 {
			zap.L().Warn("player list unavailable, using configured players", zap.Error(err))
			return compare.Pair{prefs[0], prefs[1]}, nil
		}
		return compare.Pair{}, eris.Wrap(err, "compare: resolve default players")
	}

	pair, ok := compare.DefaultPair(list, prefs...)
	if !ok {
		return compare.Pair{}, eris.New("compare: backend listed no players")
	}
	return pair, nil
}

func newCompareStore(client statsapi.Client) (*compare.Store, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return compare.New(client,
		compare.WithBaseline(normalize.Baseline(catalog.Scales())),
		compare.WithRadarOrder(metric.RadarOrder()),
		compare.WithBarOrder(metric.CompareOrder()),
	), nil
}

func buildCompareReport(store *compare.Store) compareReport {
	pair, _ := store.Pair()
	report := compareReport{A: pair.A(), B: pair.B()}

	for _, kind := range []compare.ViewKind{compare.RadarView, compare.BarView} {
		st := store.View(kind)
		if st.Status == compare.StatusError {
			if report.Errors == nil {
				report.Errors = make(map[compare.ViewKind]string)
			}
			report.Errors[kind] = st.Message
			continue
		}
		if st.Status != compare.StatusReady {
			continue
		}
		switch kind {
		case compare.RadarView:
			radar := store.RadarSeries()
			report.Radar = &radar
		case compare.BarView:
			bars := store.BarSeries()
			report.Bars = &bars
		}
	}
	return report
}

func printCompare(w io.Writer, format string, report compareReport) error {
	if format != outputTable {
		return writeStructured(w, format, report)
	}

	if report.Radar != nil {
		renderRadar(w, *report.Radar)
	} else if msg, ok := report.Errors[compare.RadarView]; ok {
		renderViewError(w, compare.ViewState{Kind: compare.RadarView, Message: msg})
	}

	if report.Bars != nil {
		renderBars(w, *report.Bars)
	} else if msg, ok := report.Errors[compare.BarView]; ok {
		renderViewError(w, compare.ViewState{Kind: compare.BarView, Message: msg})
	}
	return nil
}

func runLegacyCompare(ctx context.Context, w io.Writer, format string, client statsapi.Client, pair compare.Pair) error {
	cmp, err := client.CompareLegacy(ctx, pair.A(), pair.B())
	if err != nil {
		return eris.Wrap(err, "compare: legacy")
	}

	bars := compare.BarSeries{
		LabelA: pair.A(),
		LabelB: pair.B(),
		Rows:   normalize.Mirror(cmp.A.Values, cmp.B.Values, metric.PlayerOrder()),
	}
	return printCompare(w, format, compareReport{A: pair.A(), B: pair.B(), Bars: &bars})
}
