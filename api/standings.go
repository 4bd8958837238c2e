package api

import "github.com/bigredeye/forfeits/internal/standings"

type StandingsRequest struct {
	League   int    `json:"league" form:"league"`
	Gameweek int    `json:"gameweek" form:"gameweek"`
	Order    string `json:"order" form:"order"`
}

type StandingsResponse struct {
	Status

	Gameweek int             `json:"gameweek,omitempty"`
	Rows     []standings.Row `json:"rows,omitempty"`
}
