package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigredeye/forfeits/internal/standings"
	client "github.com/bigredeye/forfeits/pkg/client/forfeits"
)

func makeDumpStandingsCommand() *cobra.Command {
	var gameweek int
	var order string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Dump a gameweek snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpStandings(gameweek, order)
		},
	}
	cmd.Flags().IntVar(&gameweek, "gameweek", 0, "Gameweek number (0 means latest)")
	cmd.Flags().StringVar(&order, "order", standings.OrderDescending, "Sort order: asc or desc")

	return cmd
}

func dumpStandings(gameweek int, order string) error {
	forfeits, err := client.NewClient(endpoint, os.Getenv("FORFEITS_TOKEN"))
	if err != nil {
		return err
	}

	rows, err := forfeits.LoadStandings(league, gameweek, order)
	if err != nil {
		return err
	}

	for _, row := range rows {
		fmt.Printf("%d\t%s (%s)\t%d\n", row.Rank, row.EntryName, row.PlayerName, row.Points)
	}

	return nil
}
