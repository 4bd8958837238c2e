package forfeits

import (
	"golang.org/x/exp/slices"

	"github.com/bigredeye/forfeits/internal/fpl"
	"github.com/bigredeye/forfeits/internal/models"
)

const (
	OutcomeNormal  = "normal"
	OutcomeSkipped = "skipped"
	OutcomeEjected = "ejected"
	OutcomeNoData  = "no-data"
)

type Outcome = string

// GameweekResult is one row of the season chronology. LastEntries holds
// every entry tied at the minimum score; the raw computation is kept
// even when an override changes the outcome.
type GameweekResult struct {
	Event       int
	MinPoints   int
	HasData     bool
	LastEntries []int
	Outcome     Outcome
	Note        string
}

// Forfeited reports whether the gameweek actually cost somebody a
// forfeit: skipped, ejected and empty weeks do not count.
func (r *GameweekResult) Forfeited() bool {
	return r.Outcome == OutcomeNormal && len(r.LastEntries) > 0
}

func OverridesByEvent(overrides []models.Override) map[int]*models.Override {
	result := make(map[int]*models.Override, len(overrides))
	for i := range overrides {
		result[overrides[i].Event] = &overrides[i]
	}
	return result
}

// Chronology walks gameweeks first..last in order and determines the
// last-place entry of each, applying any recorded override. An override
// of kind "none" leaves the outcome normal; its note is still shown.
func Chronology(scores []fpl.GameweekScore, first, last int, overrides map[int]*models.Override) []GameweekResult {
	if last < first {
		return nil
	}
	results := make([]GameweekResult, 0, last-first+1)
	for event := first; event <= last; event++ {
		result := GameweekResult{Event: event, Outcome: OutcomeNoData}

		for _, score := range scores {
			if score.Event != event {
				continue
			}
			if !result.HasData || score.Points < result.MinPoints {
				result.MinPoints = score.Points
				result.HasData = true
			}
		}

		if result.HasData {
			result.Outcome = OutcomeNormal
			for _, score := range scores {
				if score.Event == event && score.Points == result.MinPoints {
					result.LastEntries = append(result.LastEntries, score.Entry)
				}
			}
			slices.Sort(result.LastEntries)
		}

		if override := overrides[event]; override != nil {
			result.Note = override.Note
			if result.HasData {
				switch override.Kind {
				case models.OverrideKindSkip:
					result.Outcome = OutcomeSkipped
				case models.OverrideKindEject:
					result.Outcome = OutcomeEjected
				}
			}
		}

		results = append(results, result)
	}
	return results
}

// OverviewRow is the per-entry forfeit summary shown on the home page.
type OverviewRow struct {
	Entry      int
	EntryName  string
	PlayerName string
	Total      int
	TimesLast  int
	LastEvents []int
	Forfeits   string
}

// Overview merges the chronology into per-entry counts, attaching the
// persisted forfeit notes. Sorted by times last descending, then name.
func Overview(entries []fpl.Entry, chronology []GameweekResult, notes []models.ForfeitNote) []OverviewRow {
	timesLast := make(map[int]int)
	lastEvents := make(map[int][]int)
	for i := range chronology {
		result := &chronology[i]
		if !result.Forfeited() {
			continue
		}
		for _, entry := range result.LastEntries {
			timesLast[entry]++
			lastEvents[entry] = append(lastEvents[entry], result.Event)
		}
	}

	forfeits := make(map[int]string, len(notes))
	for _, note := range notes {
		forfeits[note.Entry] = note.Notes
	}

	rows := make([]OverviewRow, 0, len(entries))
	for _, entry := range entries {
		events := lastEvents[entry.ID]
		slices.Sort(events)
		rows = append(rows, OverviewRow{
			Entry:      entry.ID,
			EntryName:  entry.Name,
			PlayerName: entry.PlayerName,
			Total:      entry.Total,
			TimesLast:  timesLast[entry.ID],
			LastEvents: events,
			Forfeits:   forfeits[entry.ID],
		})
	}

	slices.SortStableFunc(rows, func(lhs, rhs OverviewRow) bool {
		if lhs.TimesLast != rhs.TimesLast {
			return lhs.TimesLast > rhs.TimesLast
		}
		return lhs.EntryName < rhs.EntryName
	})
	return rows
}
