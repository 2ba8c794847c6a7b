package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/worldgen"
)

// simulate runs a game headless with no player actions: a balance probe for
// how long a passively governed country survives under a given seed.
func newSimulateCmd() *cobra.Command {
	var seed string
	var turns int
	var verbose bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless no-action game for balance testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}

			w := engine.CreateNewGameWorld(seed)
			fmt.Printf("world: %s\n\n", worldgen.Describe(w))

			for i := 0; i < turns; i++ {
				outcome, err := engine.SubmitTurnAndAdvance(w, nil, engine.TurnOptions{})
				if err != nil {
					return err
				}
				if verbose {
					fmt.Println(outcome.PublicResolutionText)
				}
				if outcome.Failure != nil {
					fmt.Printf("failed on turn %d: %s\n", outcome.Turn, outcome.Failure.Title)
					for _, d := range outcome.Failure.Drivers {
						fmt.Printf("  - %s\n", d)
					}
					return nil
				}
			}
			p := w.Player
			fmt.Printf("survived %d turns: stability %.0f, legitimacy %.0f, unrest %.0f, sovereignty %.0f\n",
				turns, p.Economy.Stability, p.Politics.Legitimacy, p.Politics.Unrest, p.Politics.Sovereignty)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "balance-probe", "world seed")
	cmd.Flags().IntVar(&turns, "turns", 20, "turns to simulate")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print each turn's resolution")
	return cmd
}
