package api

import "github.com/bigredeye/forfeits/internal/models"

type OverrideRequest struct {
	Token  string `json:"token" form:"token"`
	League int    `json:"league" form:"league"`
	Event  int    `json:"event" form:"event"`
	Kind   string `json:"kind" form:"kind"`
	Note   string `json:"note" form:"note"`

	// Clear removes the override row entirely, as opposed to saving an
	// explicit "none" that keeps the note around.
	Clear bool `json:"clear,omitempty" form:"clear"`
}

type OverrideResponse struct {
	Status
}

type GetOverrideRequest struct {
	League int `json:"league" form:"league"`
	Event  int `json:"event" form:"event"`
}

type GetOverrideResponse struct {
	Status

	Override *models.Override `json:"override,omitempty"`
}
