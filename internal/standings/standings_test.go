package standings

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bigredeye/forfeits/internal/fpl"
)

func makeLeague() ([]fpl.Entry, []fpl.GameweekScore) {
	entries := []fpl.Entry{
		{ID: 10, Name: "Alpha FC", PlayerName: "Alice", Total: 100},
		{ID: 20, Name: "Bravo XI", PlayerName: "Bob", Total: 80},
		{ID: 30, Name: "Charlie Utd", PlayerName: "Carol", Total: 80},
	}
	scores := []fpl.GameweekScore{
		{Entry: 10, Event: 4, Points: 10},
		{Entry: 20, Event: 4, Points: 5},
		{Entry: 30, Event: 4, Points: 5},
		{Entry: 10, Event: 5, Points: 70},
		{Entry: 20, Event: 5, Points: 1},
		{Entry: 30, Event: 5, Points: 2},
	}
	return entries, scores
}

func TestSnapshotAscendingWithTies(t *testing.T) {
	entries, scores := makeLeague()

	got := Snapshot(scores, entries, 4, OrderAscending)
	want := []Row{
		{Entry: 20, EntryName: "Bravo XI", PlayerName: "Bob", Points: 5, Rank: 1},
		{Entry: 30, EntryName: "Charlie Utd", PlayerName: "Carol", Points: 5, Rank: 2},
		{Entry: 10, EntryName: "Alpha FC", PlayerName: "Alice", Points: 10, Rank: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unexpected ascending snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshotDescendingIsExactReverse(t *testing.T) {
	entries, scores := makeLeague()

	for _, event := range []int{4, 5} {
		asc := Snapshot(scores, entries, event, OrderAscending)
		desc := Snapshot(scores, entries, event, OrderDescending)

		if len(asc) != len(desc) {
			t.Fatalf("Snapshot sizes differ: %d vs %d", len(asc), len(desc))
		}
		for i := range asc {
			mirrored := desc[len(desc)-1-i]
			if asc[i].Entry != mirrored.Entry || asc[i].Points != mirrored.Points {
				t.Fatalf("GW%d position %d: ascending has entry %d, descending mirror has %d",
					event, i, asc[i].Entry, mirrored.Entry)
			}
			if asc[i].Rank != i+1 || desc[i].Rank != i+1 {
				t.Fatalf("Ranks are not positional: asc=%d desc=%d at %d", asc[i].Rank, desc[i].Rank, i)
			}
		}
	}
}

func TestSnapshotIgnoresOtherGameweeks(t *testing.T) {
	entries, scores := makeLeague()

	got := Snapshot(scores, entries, 5, OrderDescending)
	want := []Row{
		{Entry: 10, EntryName: "Alpha FC", PlayerName: "Alice", Points: 70, Rank: 1},
		{Entry: 30, EntryName: "Charlie Utd", PlayerName: "Carol", Points: 2, Rank: 2},
		{Entry: 20, EntryName: "Bravo XI", PlayerName: "Bob", Points: 1, Rank: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unexpected snapshot (-want +got):\n%s", diff)
	}
}

func TestParseOrder(t *testing.T) {
	cases := []struct {
		raw     string
		want    Order
		wantErr bool
	}{
		{raw: "", want: OrderDescending},
		{raw: "desc", want: OrderDescending},
		{raw: "asc", want: OrderAscending},
		{raw: "sideways", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseOrder(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseOrder(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOrder(%q): unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseOrder(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestValidateGameweek(t *testing.T) {
	if err := ValidateGameweek(4, 1, 38); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ValidateGameweek(0, 1, 38); err == nil {
		t.Fatal("Expected error for gameweek before season start")
	}
	if err := ValidateGameweek(39, 1, 38); err == nil {
		t.Fatal("Expected error for gameweek after latest")
	}
}
