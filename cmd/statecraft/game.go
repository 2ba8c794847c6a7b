package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/persistence"
)

func newGameCmd() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "newgame",
		Short: "Create a new game in the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := persistence.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := game.NewService(db, nil)
			id, snap, err := svc.CreateGame(seed)
			if err != nil {
				return err
			}

			fmt.Printf("game:    %s\n", id)
			fmt.Printf("country: %s (%s)\n", snap.Dossier.Name, snap.Dossier.Region)
			fmt.Printf("regime:  %s\n", snap.Dossier.Regime)
			fmt.Printf("\n%s\n", snap.Briefing)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "world seed (random if empty)")
	return cmd
}
