package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/persistence"
)

func newTurnCmd() *cobra.Command {
	var actionsJSON string
	cmd := &cobra.Command{
		Use:   "turn <game-id>",
		Short: "Submit a turn for a game in the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var actions []engine.PlayerAction
			if actionsJSON != "" {
				if err := json.Unmarshal([]byte(actionsJSON), &actions); err != nil {
					return fmt.Errorf("parse --actions: %w", err)
				}
			}

			db, err := persistence.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := game.NewService(db, nil)
			outcome, snap, err := svc.SubmitTurn(args[0], actions)
			if err != nil {
				return err
			}

			fmt.Println(outcome.PublicResolutionText)
			for _, s := range outcome.SignalsUnknown {
				fmt.Printf("  ? %s\n", s)
			}
			if outcome.Failure != nil {
				fmt.Printf("\nGAME OVER — %s\n", outcome.Failure.Title)
				for _, d := range outcome.Failure.Drivers {
					fmt.Printf("  - %s\n", d)
				}
				fmt.Printf("  %s\n", outcome.Failure.PointOfNoReturn)
				return nil
			}
			fmt.Printf("\n%s\n", snap.Briefing)
			return nil
		},
	}
	cmd.Flags().StringVar(&actionsJSON, "actions", "", `actions as JSON, e.g. '[{"category":"ECONOMY","type":"SUBSIDIES","intensity":2,"visibility":"PUBLIC"}]'`)
	return cmd
}
