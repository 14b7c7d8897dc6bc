package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/statcompare/internal/metric"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the entities the backend knows about",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		entities, err := newClient().ListEntities(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "players")
		}

		w := cmd.OutOrStdout()
		if format != outputTable {
			return writeStructured(w, format, entities)
		}
		if len(entities) == 0 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No entities found.")
			return nil
		}
		renderEntities(w, entities)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <team>",
	Short: "Show a team's raw season statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		snap, err := newClient().RawStats(cmd.Context(), entityArg(args[0]))
		if err != nil {
			return eris.Wrap(err, "stats")
		}

		w := cmd.OutOrStdout()
		if format != outputTable {
			return writeStructured(w, format, snap)
		}
		renderSnapshot(w, string(snap.Entity), snap, nil)
		return nil
	},
}

var radarCmd = &cobra.Command{
	Use:   "radar <team>",
	Short: "Show a team's normalized radar statistics",
	Long:  "Shows the 0-100 radar values for one team. Use \"Conference Average\" for the conference baseline.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		snap, err := newClient().RadarStats(cmd.Context(), entityArg(args[0]))
		if err != nil {
			return eris.Wrap(err, "radar")
		}

		w := cmd.OutOrStdout()
		if format != outputTable {
			return writeStructured(w, format, snap)
		}
		renderSnapshot(w, string(snap.Entity), snap, metric.RadarOrder())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(radarCmd)
}
