package forfeits

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bigredeye/forfeits/internal/fpl"
	"github.com/bigredeye/forfeits/internal/models"
)

func makeScores() []fpl.GameweekScore {
	return []fpl.GameweekScore{
		{Entry: 10, Event: 3, Points: 60},
		{Entry: 20, Event: 3, Points: 40},
		{Entry: 30, Event: 3, Points: 55},

		{Entry: 10, Event: 4, Points: 10},
		{Entry: 20, Event: 4, Points: 5},
		{Entry: 30, Event: 4, Points: 5},

		// nobody played gameweek 5

		{Entry: 10, Event: 6, Points: 33},
		{Entry: 20, Event: 6, Points: 50},
		{Entry: 30, Event: 6, Points: 41},
	}
}

func override(event int, kind models.OverrideKind, note string) map[int]*models.Override {
	return map[int]*models.Override{
		event: {Event: event, Kind: kind, Note: note},
	}
}

func TestChronologyWithoutOverrides(t *testing.T) {
	results := Chronology(makeScores(), 3, 6, nil)

	want := []GameweekResult{
		{Event: 3, MinPoints: 40, HasData: true, LastEntries: []int{20}, Outcome: OutcomeNormal},
		{Event: 4, MinPoints: 5, HasData: true, LastEntries: []int{20, 30}, Outcome: OutcomeNormal},
		{Event: 5, Outcome: OutcomeNoData},
		{Event: 6, MinPoints: 33, HasData: true, LastEntries: []int{10}, Outcome: OutcomeNormal},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("Unexpected chronology (-want +got):\n%s", diff)
	}
}

func TestChronologyBeforeLeagueStartIsEmpty(t *testing.T) {
	// A league whose start event lies past every played gameweek has no
	// chronology yet; any inverted range must render as an empty season.
	if results := Chronology(makeScores(), 7, 6, nil); len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
	if results := Chronology(makeScores(), 10, 3, nil); len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
	if results := Chronology(nil, 1, 0, nil); len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}

func TestEjectOverrideWinsOverRawComputation(t *testing.T) {
	results := Chronology(makeScores(), 3, 6, override(4, models.OverrideKindEject, "left the league"))

	result := results[1]
	if result.Event != 4 {
		t.Fatalf("Unexpected event %d", result.Event)
	}
	if result.Outcome != OutcomeEjected {
		t.Fatalf("Expected ejected outcome, got %q", result.Outcome)
	}
	if result.Note != "left the league" {
		t.Fatalf("Lost the override note: %q", result.Note)
	}
	// The raw computation is preserved for display.
	if diff := cmp.Diff([]int{20, 30}, result.LastEntries); diff != "" {
		t.Fatalf("Unexpected last entries (-want +got):\n%s", diff)
	}
	if result.Forfeited() {
		t.Fatal("An ejected gameweek must not count as a forfeit")
	}
}

func TestSkipOverrideCarriesNote(t *testing.T) {
	results := Chronology(makeScores(), 3, 6, override(4, models.OverrideKindSkip, "bye week"))

	result := results[1]
	if result.Outcome != OutcomeSkipped {
		t.Fatalf("Expected skipped outcome, got %q", result.Outcome)
	}
	if result.Note != "bye week" {
		t.Fatalf("Lost the override note: %q", result.Note)
	}
}

func TestNoneOverrideKeepsNormalOutcome(t *testing.T) {
	results := Chronology(makeScores(), 3, 6, override(4, models.OverrideKindNone, "cleared"))

	result := results[1]
	if result.Outcome != OutcomeNormal {
		t.Fatalf("An explicit none override must not change the outcome, got %q", result.Outcome)
	}
	if result.Note != "cleared" {
		t.Fatalf("Lost the override note: %q", result.Note)
	}
	if !result.Forfeited() {
		t.Fatal("A none override still forfeits")
	}
}

func TestOverrideOnEmptyGameweekStaysNoData(t *testing.T) {
	results := Chronology(makeScores(), 3, 6, override(5, models.OverrideKindEject, ""))

	if results[2].Outcome != OutcomeNoData {
		t.Fatalf("Expected no-data outcome, got %q", results[2].Outcome)
	}
}

func TestOverviewCountsAndNotes(t *testing.T) {
	entries := []fpl.Entry{
		{ID: 10, Name: "Alpha FC", PlayerName: "Alice", Total: 103},
		{ID: 20, Name: "Bravo XI", PlayerName: "Bob", Total: 95},
		{ID: 30, Name: "Charlie Utd", PlayerName: "Carol", Total: 101},
	}
	notes := []models.ForfeitNote{
		{Entry: 20, Notes: "owes a crate"},
	}

	// Gameweek 3 is skipped, so only gameweeks 4 and 6 forfeit.
	chronology := Chronology(makeScores(), 3, 6, override(3, models.OverrideKindSkip, ""))
	rows := Overview(entries, chronology, notes)

	// Everybody was last exactly once, so names decide the order.
	want := []OverviewRow{
		{Entry: 10, EntryName: "Alpha FC", PlayerName: "Alice", Total: 103, TimesLast: 1, LastEvents: []int{6}},
		{Entry: 20, EntryName: "Bravo XI", PlayerName: "Bob", Total: 95, TimesLast: 1, LastEvents: []int{4}, Forfeits: "owes a crate"},
		{Entry: 30, EntryName: "Charlie Utd", PlayerName: "Carol", Total: 101, TimesLast: 1, LastEvents: []int{4}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("Unexpected overview (-want +got):\n%s", diff)
	}
}

func TestOverviewExcludesEjectedAndEmptyWeeks(t *testing.T) {
	entries := []fpl.Entry{
		{ID: 10, Name: "Alpha FC"},
		{ID: 20, Name: "Bravo XI"},
		{ID: 30, Name: "Charlie Utd"},
	}
	overrides := map[int]*models.Override{
		4: {Event: 4, Kind: models.OverrideKindEject},
		6: {Event: 6, Kind: models.OverrideKindSkip},
	}

	chronology := Chronology(makeScores(), 3, 6, overrides)
	rows := Overview(entries, chronology, nil)

	for _, row := range rows {
		switch row.Entry {
		case 20:
			if row.TimesLast != 1 {
				t.Fatalf("Entry 20 should only count gameweek 3, got %d", row.TimesLast)
			}
		default:
			if row.TimesLast != 0 {
				t.Fatalf("Entry %d should have no forfeits, got %d", row.Entry, row.TimesLast)
			}
		}
	}
}
