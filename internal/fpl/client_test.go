package fpl

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &config.Config{}
	conf.FillDefaults()
	conf.Fpl.BaseURL = server.URL
	conf.Fpl.Timeout = time.Second * 5
	conf.Fpl.CacheTTL = time.Minute

	return NewClient(conf, zap.NewNop())
}

func leaguePage(page int, hasNext bool, results string) string {
	return fmt.Sprintf(`{
		"league": {"id": 1415574, "name": "Office League", "start_event": 1},
		"standings": {"has_next": %t, "page": %d, "results": [%s]}
	}`, hasNext, page, results)
}

func TestLeagueEntriesWalksAllPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/leagues-classic/1415574/standings/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page_standings") {
		case "1":
			fmt.Fprint(w, leaguePage(1, true,
				`{"entry": 10, "entry_name": "Alpha FC", "player_name": "Alice", "total": 103}`))
		case "2":
			fmt.Fprint(w, leaguePage(2, false,
				`{"entry": 20, "entry_name": "Bravo XI", "player_name": "Bob", "total": 95}`))
		default:
			http.NotFound(w, r)
		}
	})

	client := newTestClient(t, mux)
	league, entries, err := client.LeagueEntries(1415574)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantLeague := &League{ID: 1415574, Name: "Office League", StartEvent: 1}
	if diff := cmp.Diff(wantLeague, league); diff != "" {
		t.Fatalf("Unexpected league (-want +got):\n%s", diff)
	}

	wantEntries := []Entry{
		{ID: 10, Name: "Alpha FC", PlayerName: "Alice", Total: 103},
		{ID: 20, Name: "Bravo XI", PlayerName: "Bob", Total: 95},
	}
	if diff := cmp.Diff(wantEntries, entries); diff != "" {
		t.Fatalf("Unexpected entries (-want +got):\n%s", diff)
	}
}

func TestEntryHistoryTotalsAreConsistent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/entry/10/history/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current": [
			{"event": 1, "points": 50, "total_points": 50},
			{"event": 2, "points": 38, "total_points": 88},
			{"event": 3, "points": 61, "total_points": 149}
		]}`)
	})

	client := newTestClient(t, mux)
	history, err := client.EntryHistory(10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []GameweekScore{
		{Entry: 10, Event: 1, Points: 50, Total: 50},
		{Entry: 10, Event: 2, Points: 38, Total: 88},
		{Entry: 10, Event: 3, Points: 61, Total: 149},
	}
	if diff := cmp.Diff(want, history); diff != "" {
		t.Fatalf("Unexpected history (-want +got):\n%s", diff)
	}

	sum := 0
	for _, score := range history {
		sum += score.Points
	}
	if last := history[len(history)-1]; sum != last.Total {
		t.Fatalf("Gameweek points sum to %d, reported total is %d", sum, last.Total)
	}
}

func TestFetchErrorOnBadStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))

	_, _, err := client.LeagueEntries(1)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !IsFetchError(err) {
		t.Fatalf("Expected a fetch error, got %T: %v", err, err)
	}
}

func TestFetchErrorOnMalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"league": `)
	}))

	_, err := client.EntryHistory(10)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !IsFetchError(err) {
		t.Fatalf("Expected a fetch error, got %T: %v", err, err)
	}
}

func TestResponsesAreCached(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"current": [{"event": 1, "points": 10, "total_points": 10}]}`)
	}))

	for i := 0; i < 3; i++ {
		if _, err := client.EntryHistory(10); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if requests != 1 {
		t.Fatalf("Expected a single upstream request, got %d", requests)
	}
}

func TestSeasonRange(t *testing.T) {
	scores := []GameweekScore{
		{Entry: 10, Event: 2, Points: 1},
		{Entry: 10, Event: 7, Points: 1},
	}

	first, last := SeasonRange(&League{StartEvent: 1}, scores)
	if first != 1 || last != 7 {
		t.Fatalf("Unexpected range [%d, %d]", first, last)
	}

	first, last = SeasonRange(nil, scores)
	if first != 2 || last != 7 {
		t.Fatalf("Unexpected range [%d, %d]", first, last)
	}

	first, last = SeasonRange(nil, nil)
	if first != 1 || last != 0 {
		t.Fatalf("Unexpected empty-season range [%d, %d]", first, last)
	}
}

func TestSeasonRangeWithFutureStartEvent(t *testing.T) {
	scores := []GameweekScore{
		{Entry: 10, Event: 2, Points: 1},
		{Entry: 10, Event: 3, Points: 1},
	}

	// League configured to start well after the latest played gameweek.
	first, last := SeasonRange(&League{StartEvent: 10}, scores)
	if last != 3 {
		t.Fatalf("Unexpected last gameweek %d", last)
	}
	if first > last+1 {
		t.Fatalf("Range [%d, %d] is not even empty", first, last)
	}

	first, last = SeasonRange(&League{StartEvent: 10}, nil)
	if first > last+1 {
		t.Fatalf("Range [%d, %d] is not even empty", first, last)
	}
}
