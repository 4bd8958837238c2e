package fpl

// League is the classic mini-league metadata.
type League struct {
	ID         int
	Name       string
	StartEvent int
}

// Entry is one participant of the mini-league.
type Entry struct {
	ID         int
	Name       string
	PlayerName string
	Total      int
}

// GameweekScore is one entry's result for one gameweek.
type GameweekScore struct {
	Entry  int
	Event  int
	Points int
	Total  int
}

type classicLeagueResponse struct {
	League struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		StartEvent int    `json:"start_event"`
	} `json:"league"`
	Standings struct {
		HasNext bool `json:"has_next"`
		Page    int  `json:"page"`
		Results []struct {
			Entry      int    `json:"entry"`
			EntryName  string `json:"entry_name"`
			PlayerName string `json:"player_name"`
			Total      int    `json:"total"`
		} `json:"results"`
	} `json:"standings"`
}

type entryHistoryResponse struct {
	Current []struct {
		Event       int `json:"event"`
		Points      int `json:"points"`
		TotalPoints int `json:"total_points"`
	} `json:"current"`
}
