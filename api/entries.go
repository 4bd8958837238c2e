package api

import "github.com/bigredeye/forfeits/internal/fpl"

type EntriesRequest struct {
	League int `json:"league" form:"league"`
}

type EntriesResponse struct {
	Status

	League  *fpl.League `json:"league,omitempty"`
	Entries []fpl.Entry `json:"entries,omitempty"`
}
