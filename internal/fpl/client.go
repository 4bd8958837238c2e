package fpl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karlseguin/ccache/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/internal/config"
)

const pageSleep = time.Millisecond * 200

// Client fetches classic-league standings and per-entry histories from
// the FPL API. Responses are cached in-process for conf.Fpl.CacheTTL so
// a page reload does not hammer the upstream.
type Client struct {
	client *resty.Client
	cache  *ccache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewClient(conf *config.Config, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(conf.Fpl.BaseURL).
		SetTimeout(conf.Fpl.Timeout).
		SetHeader("User-Agent", conf.Fpl.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		client: client,
		cache:  ccache.New(ccache.Configure().MaxSize(1000)),
		ttl:    conf.Fpl.CacheTTL,
		logger: logger,
	}
}

func (c *Client) get(url string, out interface{}) error {
	item, err := c.cache.Fetch(url, c.ttl, func() (interface{}, error) {
		resp, err := c.client.R().Get(url)
		if err != nil {
			return nil, fetchError(url, err)
		}
		if resp.IsError() {
			return nil, fetchError(url, errors.Errorf("unexpected status %s", resp.Status()))
		}
		c.logger.Debug("Fetched fpl url", zap.String("url", url), zap.Int("bytes", len(resp.Body())))
		return resp.Body(), nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(item.Value().([]byte), out); err != nil {
		// Cached garbage would fail every render until the TTL expires.
		c.cache.Delete(url)
		return fetchError(url, errors.Wrap(err, "malformed response"))
	}
	return nil
}

// LeagueEntries walks all standings pages of the classic league and
// returns the league metadata together with every entry.
func (c *Client) LeagueEntries(leagueID int) (*League, []Entry, error) {
	var league *League
	entries := make([]Entry, 0)

	for page := 1; ; page++ {
		url := fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page)
		res := classicLeagueResponse{}
		if err := c.get(url, &res); err != nil {
			return nil, nil, err
		}

		if league == nil {
			league = &League{
				ID:         res.League.ID,
				Name:       res.League.Name,
				StartEvent: res.League.StartEvent,
			}
		}
		for _, row := range res.Standings.Results {
			entries = append(entries, Entry{
				ID:         row.Entry,
				Name:       row.EntryName,
				PlayerName: row.PlayerName,
				Total:      row.Total,
			})
		}

		if !res.Standings.HasNext {
			break
		}
		time.Sleep(pageSleep)
	}

	if league.Name == "" {
		league.Name = fmt.Sprintf("League %d", leagueID)
	}
	return league, entries, nil
}

// EntryHistory returns one gameweek row per completed event for the entry.
func (c *Client) EntryHistory(entryID int) ([]GameweekScore, error) {
	url := fmt.Sprintf("/entry/%d/history/", entryID)
	res := entryHistoryResponse{}
	if err := c.get(url, &res); err != nil {
		return nil, err
	}

	scores := make([]GameweekScore, 0, len(res.Current))
	for _, row := range res.Current {
		scores = append(scores, GameweekScore{
			Entry:  entryID,
			Event:  row.Event,
			Points: row.Points,
			Total:  row.TotalPoints,
		})
	}
	return scores, nil
}

// GameweekScores flattens the histories of all entries. Entries are
// fetched one by one; each user interaction is a single synchronous
// fetch-compute-render cycle.
func (c *Client) GameweekScores(entries []Entry) ([]GameweekScore, error) {
	scores := make([]GameweekScore, 0)
	for _, entry := range entries {
		history, err := c.EntryHistory(entry.ID)
		if err != nil {
			return nil, err
		}
		scores = append(scores, history...)
	}
	return scores, nil
}

// SeasonRange returns the first and latest gameweek worth displaying.
// The league's start event wins over the earliest fetched score, so a
// league created mid-season does not show pre-start weeks.
func SeasonRange(league *League, scores []GameweekScore) (first, last int) {
	for _, score := range scores {
		if first == 0 || score.Event < first {
			first = score.Event
		}
		if score.Event > last {
			last = score.Event
		}
	}
	if league != nil && league.StartEvent > 0 {
		first = league.StartEvent
	}
	if first == 0 {
		first = 1
	}
	// A start event past every fetched score means the league has not
	// played yet; keep first..last a valid, possibly empty, range.
	if first > last+1 {
		first = last + 1
	}
	return
}
