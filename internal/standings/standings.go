package standings

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/bigredeye/forfeits/internal/fpl"
)

const (
	OrderAscending  = "asc"
	OrderDescending = "desc"
)

type Order = string

// Row is one line of a gameweek snapshot. Rank is the 1-based position
// in the returned order.
type Row struct {
	Entry      int
	EntryName  string
	PlayerName string
	Points     int
	Rank       int
}

// Snapshot ranks all entries by their points at the given gameweek.
//
// Ties are broken by entry name, then entry id, which makes the order
// total and deterministic. The descending snapshot is the exact reverse
// of the ascending one.
func Snapshot(scores []fpl.GameweekScore, entries []fpl.Entry, event int, order Order) []Row {
	names := make(map[int]fpl.Entry, len(entries))
	for _, entry := range entries {
		names[entry.ID] = entry
	}

	rows := make([]Row, 0, len(entries))
	for _, score := range scores {
		if score.Event != event {
			continue
		}
		entry := names[score.Entry]
		rows = append(rows, Row{
			Entry:      score.Entry,
			EntryName:  entry.Name,
			PlayerName: entry.PlayerName,
			Points:     score.Points,
		})
	}

	slices.SortStableFunc(rows, func(lhs, rhs Row) bool {
		if lhs.Points != rhs.Points {
			return lhs.Points < rhs.Points
		}
		if lhs.EntryName != rhs.EntryName {
			return lhs.EntryName < rhs.EntryName
		}
		return lhs.Entry < rhs.Entry
	})

	if order == OrderDescending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func ParseOrder(raw string) (Order, error) {
	switch raw {
	case "", OrderDescending:
		return OrderDescending, nil
	case OrderAscending:
		return OrderAscending, nil
	default:
		return "", errors.Errorf("unknown sort order %q", raw)
	}
}

// ValidateGameweek rejects gameweeks outside the fetched season range.
func ValidateGameweek(event, first, last int) error {
	if event < first || event > last {
		return errors.Errorf("gameweek %d is outside the season range [%d, %d]", event, first, last)
	}
	return nil
}
