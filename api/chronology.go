package api

import "github.com/bigredeye/forfeits/internal/forfeits"

type ChronologyRequest struct {
	League int `json:"league" form:"league"`
}

type ChronologyResponse struct {
	Status

	Results []forfeits.GameweekResult `json:"results,omitempty"`
}
