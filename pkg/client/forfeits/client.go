package forfeits

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bigredeye/forfeits/api"
	"github.com/bigredeye/forfeits/internal/forfeits"
	"github.com/bigredeye/forfeits/internal/fpl"
	"github.com/bigredeye/forfeits/internal/models"
	"github.com/bigredeye/forfeits/internal/standings"
)

type Client struct {
	client *resty.Client
	token  string
}

func NewClient(endpoint, token string) (*Client, error) {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 30)

	return &Client{client, token}, nil
}

func (c *Client) LoadEntries(league int) (*fpl.League, []fpl.Entry, error) {
	res := &api.EntriesResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetQueryParam("league", fmt.Sprint(league)).
		Get("/api/entries")
	if err != nil {
		return nil, nil, err
	}

	if !res.Ok {
		return nil, nil, fmt.Errorf("failed to fetch entries: %s", res.Error)
	}

	return res.League, res.Entries, nil
}

func (c *Client) LoadStandings(league, gameweek int, order standings.Order) ([]standings.Row, error) {
	res := &api.StandingsResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetQueryParam("league", fmt.Sprint(league)).
		SetQueryParam("gameweek", fmt.Sprint(gameweek)).
		SetQueryParam("order", order).
		Get("/api/standings")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch standings: %s", res.Error)
	}

	return res.Rows, nil
}

func (c *Client) LoadChronology(league int) ([]forfeits.GameweekResult, error) {
	res := &api.ChronologyResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetQueryParam("league", fmt.Sprint(league)).
		Get("/api/chronology")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch chronology: %s", res.Error)
	}

	return res.Results, nil
}

func (c *Client) LoadOverride(league, event int) (*models.Override, error) {
	res := &api.GetOverrideResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetQueryParam("league", fmt.Sprint(league)).
		SetQueryParam("event", fmt.Sprint(event)).
		Get("/api/override")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch override: %s", res.Error)
	}

	return res.Override, nil
}

func (c *Client) ClearOverride(league, event int) error {
	res := &api.OverrideResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetBody(api.OverrideRequest{
			Token:  c.token,
			League: league,
			Event:  event,
			Clear:  true,
		}).
		Post("/api/override")
	if err != nil {
		return err
	}

	if !res.Ok {
		return fmt.Errorf("failed to clear override: %s", res.Error)
	}

	return nil
}

func (c *Client) SetOverride(league, event int, kind, note string) error {
	res := &api.OverrideResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetBody(api.OverrideRequest{
			Token:  c.token,
			League: league,
			Event:  event,
			Kind:   kind,
			Note:   note,
		}).
		Post("/api/override")
	if err != nil {
		return err
	}

	if !res.Ok {
		return fmt.Errorf("failed to set override: %s", res.Error)
	}

	return nil
}
