package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hypertime/recording"
)

var (
	transitsDBFlag   string
	transitsTripFlag string
)

var transitsCmd = &cobra.Command{
	Use:   "transits",
	Short: "List the transits recorded in a transcript",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reader := recording.NewReader(transitsDBFlag)
		defer reader.Close()

		reader.MapTable("boxes", recording.BoxRow{})

		params := recording.QueryParams{OrderBy: "R0"}
		if transitsTripFlag != "" {
			params.Where = "TripID = ?"
			params.Args = []any{transitsTripFlag}
		}

		rows, total, err := reader.Query(cmd.Context(), "boxes", params)
		if err != nil {
			return err
		}

		fmt.Printf("transits: %d\n", total)
		for _, row := range rows {
			b := row.(recording.BoxRow)
			fmt.Printf("  trip %s in transit [%v, %v), hypertime %v -> %v\n",
				b.TripID, b.R0, b.Rf, b.DepartH0, b.ArriveH0)
		}

		return nil
	},
}

func init() {
	transitsCmd.Flags().StringVarP(&transitsDBFlag,
		"db", "d", "", "path of the transcript .sqlite3 file")
	transitsCmd.Flags().StringVar(&transitsTripFlag,
		"trip", "", "only list transits of this trip")

	if err := transitsCmd.MarkFlagRequired("db"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(transitsCmd)
}
