package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hypertime/ruleset"
	"github.com/sarchlab/hypertime/sim"
	"github.com/sarchlab/hypertime/simulation"
)

var (
	runRulesFlag   string
	runUntilFlag   float64
	runMonitorFlag bool
	runOutputFlag  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance a universe until a target real time",
	RunE: func(_ *cobra.Command, _ []string) error {
		rules, err := ruleset.ParseFile(runRulesFlag)
		if err != nil {
			return err
		}

		s := simulation.MakeBuilder().
			WithRules(rules).
			WithMonitoring(runMonitorFlag).
			WithOutputFileName(runOutputFlag).
			Build()
		defer s.Terminate()

		err = s.RunUntil(sim.RealTime(runUntilFlag))
		if err != nil {
			return err
		}

		printSummary(s.Driver().View())

		return nil
	},
}

func printSummary(gv sim.GodView) {
	if sim.IsEndOfTime(gv.Now) {
		fmt.Println("universe is quiescent")
	} else {
		fmt.Printf("now: %v\n", gv.Now)
	}

	fmt.Printf("transits: %d\n", len(gv.Past))
	for _, b := range gv.Past {
		fmt.Printf("  trip %s in transit [%v, %v), hypertime %v -> %v\n",
			b.Start.TripID, b.Start.R0, b.Rf,
			b.Start.DepartH0, b.Start.ArriveH0)
	}

	fmt.Printf("chunks: %d\n", len(gv.Chunks))
	for _, c := range gv.Chunks {
		fmt.Printf("  [%v, %v) %s\n", c.Start, c.End, c.History)
	}
}

func init() {
	runCmd.Flags().StringVarP(&runRulesFlag,
		"rules", "r", "", "path of the ruleset file")
	runCmd.Flags().Float64VarP(&runUntilFlag,
		"until", "t", 0, "target real time to advance to")
	runCmd.Flags().BoolVar(&runMonitorFlag,
		"monitor", false, "start the monitoring server")
	runCmd.Flags().StringVarP(&runOutputFlag,
		"output", "o", "", "transcript file name, without the .sqlite3 suffix")

	err := runCmd.MarkFlagRequired("rules")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.AddCommand(runCmd)
}
