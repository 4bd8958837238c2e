package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/bigredeye/forfeits/pkg/client/forfeits"
)

func makeOverrideCommand() *cobra.Command {
	var event int
	var kind string
	var note string
	var clear bool
	var show bool

	cmd := &cobra.Command{
		Use:   "override",
		Short: "Inspect or record a gameweek override",
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				return showOverride(event)
			}
			if clear {
				return clearOverride(event)
			}
			return setOverride(event, kind, note)
		},
	}

	cmd.Flags().IntVar(&event, "gameweek", 0, "Gameweek number")
	cmd.Flags().StringVar(&kind, "kind", "none", "Override kind: none, skip or eject")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the override entirely")
	cmd.Flags().BoolVar(&show, "show", false, "Print the current override")

	return cmd
}

func showOverride(event int) error {
	forfeits, err := client.NewClient(endpoint, os.Getenv("FORFEITS_TOKEN"))
	if err != nil {
		return err
	}

	override, err := forfeits.LoadOverride(league, event)
	if err != nil {
		return err
	}
	if override == nil {
		fmt.Printf("GW%d\tno override\n", event)
		return nil
	}

	fmt.Printf("GW%d\t%s\t%s\n", override.Event, override.Kind, override.Note)
	return nil
}

func clearOverride(event int) error {
	forfeits, err := client.NewClient(endpoint, os.Getenv("FORFEITS_TOKEN"))
	if err != nil {
		return err
	}

	if err := forfeits.ClearOverride(league, event); err != nil {
		return err
	}

	log.Info("Removed override", zap.Int("gameweek", event))
	return nil
}

func setOverride(event int, kind, note string) error {
	forfeits, err := client.NewClient(endpoint, os.Getenv("FORFEITS_TOKEN"))
	if err != nil {
		return err
	}

	err = forfeits.SetOverride(league, event, kind, note)
	if err != nil {
		return err
	}

	log.Info("Saved override",
		zap.Int("gameweek", event),
		zap.String("kind", kind),
		zap.String("note", note),
	)

	return nil
}
