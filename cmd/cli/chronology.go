package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigredeye/forfeits/internal/forfeits"
	client "github.com/bigredeye/forfeits/pkg/client/forfeits"
)

func makeDumpChronologyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronology",
		Short: "Dump the last-place chronology",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpChronology()
		},
	}

	return cmd
}

func dumpChronology() error {
	c, err := client.NewClient(endpoint, os.Getenv("FORFEITS_TOKEN"))
	if err != nil {
		return err
	}

	results, err := c.LoadChronology(league)
	if err != nil {
		return err
	}

	for i := range results {
		fmt.Printf("GW%d\t%s\n", results[i].Event, describeResult(&results[i]))
	}

	return nil
}

func describeResult(result *forfeits.GameweekResult) string {
	switch result.Outcome {
	case forfeits.OutcomeSkipped, forfeits.OutcomeEjected:
		return fmt.Sprintf("none (%s)", result.Outcome)
	case forfeits.OutcomeNoData:
		return "no data"
	}
	if len(result.LastEntries) == 0 {
		return "none"
	}

	entries := make([]string, 0, len(result.LastEntries))
	for _, entry := range result.LastEntries {
		entries = append(entries, fmt.Sprint(entry))
	}
	return fmt.Sprintf("%s (%d pts)", strings.Join(entries, ", "), result.MinPoints)
}
