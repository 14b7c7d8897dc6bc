package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/statcompare/internal/efficiency"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

var efficiencyCmd = &cobra.Command{
	Use:   "efficiency [team]",
	Short: "Show minutes and points per game for a team's players",
	Long:  "Lists player efficiency for one team, or for every player when no team is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		var team statsapi.EntityID
		if len(args) == 1 {
			team = entityArg(args[0])
		}

		panel := efficiency.New(newClient())
		panel.Select(cmd.Context(), team)
		panel.Wait()

		st := panel.State()
		if st.Status == efficiency.StatusError {
			return eris.Wrap(st.Cause, st.Message)
		}

		w := cmd.OutOrStdout()
		view := panel.View()
		if format != outputTable {
			return writeStructured(w, format, view)
		}
		renderEfficiency(w, view)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(efficiencyCmd)
}
