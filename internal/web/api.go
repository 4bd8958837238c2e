package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/api"
	"github.com/bigredeye/forfeits/internal/forfeits"
	"github.com/bigredeye/forfeits/internal/fpl"
	"github.com/bigredeye/forfeits/internal/models"
	"github.com/bigredeye/forfeits/internal/standings"
)

type apiService struct {
	webService
}

func setupApiService(server *server, r *gin.Engine) {
	s := apiService{webService{server, server.config, server.logger}}

	r.GET(server.config.Endpoints.Api.Entries, s.entries)
	r.GET(server.config.Endpoints.Api.Standings, s.standings)
	r.GET(server.config.Endpoints.Api.Chronology, s.chronology)
	r.GET(server.config.Endpoints.Api.Override, s.getOverride)
	r.POST(server.config.Endpoints.Api.Override, s.override)
}

func (s apiService) getOverride(c *gin.Context) {
	req := api.GetOverrideRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, &api.Status{Error: err.Error()})
		return
	}

	override, err := s.server.db.GetOverride(s.leagueID(req.League), req.Event)
	if err != nil {
		s.log.Warn("Failed to load override", zap.Error(err))
		c.JSON(http.StatusInternalServerError, &api.GetOverrideResponse{
			Status: api.Status{Error: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, &api.GetOverrideResponse{
		Status:   api.Status{Ok: true},
		Override: override,
	})
}

func (s apiService) leagueID(req int) int {
	if req > 0 {
		return req
	}
	return s.config.League.DefaultID
}

func (s apiService) entries(c *gin.Context) {
	req := api.EntriesRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, &api.Status{Error: err.Error()})
		return
	}

	league, entries, err := s.server.fpl.LeagueEntries(s.leagueID(req.League))
	if err != nil {
		s.log.Warn("Failed to fetch league entries", zap.Error(err))
		c.JSON(http.StatusBadGateway, &api.EntriesResponse{
			Status: api.Status{Error: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, &api.EntriesResponse{
		Status:  api.Status{Ok: true},
		League:  league,
		Entries: entries,
	})
}

func (s apiService) standings(c *gin.Context) {
	req := api.StandingsRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, &api.Status{Error: err.Error()})
		return
	}

	onError := func(code int, err error) {
		s.log.Warn("Failed to build standings", zap.Error(err))
		c.JSON(code, &api.StandingsResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	league, entries, err := s.server.fpl.LeagueEntries(s.leagueID(req.League))
	if err != nil {
		onError(http.StatusBadGateway, err)
		return
	}
	scores, err := s.server.fpl.GameweekScores(entries)
	if err != nil {
		onError(http.StatusBadGateway, err)
		return
	}

	first, last := fpl.SeasonRange(league, scores)
	gameweek := req.Gameweek
	if gameweek == 0 {
		gameweek = last
	}
	if err := standings.ValidateGameweek(gameweek, first, last); err != nil {
		onError(http.StatusBadRequest, err)
		return
	}
	order, err := standings.ParseOrder(req.Order)
	if err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, &api.StandingsResponse{
		Status:   api.Status{Ok: true},
		Gameweek: gameweek,
		Rows:     standings.Snapshot(scores, entries, gameweek, order),
	})
}

func (s apiService) chronology(c *gin.Context) {
	req := api.ChronologyRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, &api.Status{Error: err.Error()})
		return
	}

	onError := func(code int, err error) {
		s.log.Warn("Failed to build chronology", zap.Error(err))
		c.JSON(code, &api.ChronologyResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	leagueID := s.leagueID(req.League)
	league, entries, err := s.server.fpl.LeagueEntries(leagueID)
	if err != nil {
		onError(http.StatusBadGateway, err)
		return
	}
	scores, err := s.server.fpl.GameweekScores(entries)
	if err != nil {
		onError(http.StatusBadGateway, err)
		return
	}
	overrides, err := s.server.db.ListOverrides(leagueID)
	if err != nil {
		onError(http.StatusInternalServerError, err)
		return
	}

	first, last := fpl.SeasonRange(league, scores)
	c.JSON(http.StatusOK, &api.ChronologyResponse{
		Status:  api.Status{Ok: true},
		Results: forfeits.Chronology(scores, first, last, forfeits.OverridesByEvent(overrides)),
	})
}

func (s apiService) override(c *gin.Context) {
	s.log.Info("Handling override request")
	onError := func(code int, err error) {
		s.log.Warn("Failed to process override request", zap.Error(err))
		c.JSON(code, &api.OverrideResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	req := api.OverrideRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	found := false
	for _, token := range s.config.Api.Tokens {
		if token == req.Token {
			found = true
			break
		}
	}
	if !found {
		onError(http.StatusUnauthorized, fmt.Errorf("Invalid or expired token"))
		return
	}

	if req.Event <= 0 {
		onError(http.StatusBadRequest, fmt.Errorf("Missing gameweek"))
		return
	}

	leagueID := s.leagueID(req.League)
	if req.Clear {
		if err := s.server.db.RemoveOverride(leagueID, req.Event); err != nil {
			onError(http.StatusInternalServerError, err)
			return
		}
		s.log.Info("Removed override", zap.Int("league_id", leagueID), zap.Int("event", req.Event))
		c.JSON(http.StatusOK, &api.OverrideResponse{
			Status: api.Status{Ok: true},
		})
		return
	}

	if !models.IsValidOverrideKind(req.Kind) {
		onError(http.StatusBadRequest, fmt.Errorf("Unknown override kind %q", req.Kind))
		return
	}

	if err := s.server.db.SetOverride(leagueID, req.Event, req.Kind, req.Note); err != nil {
		onError(http.StatusInternalServerError, err)
		return
	}

	s.log.Info("Saved override",
		zap.Int("league_id", leagueID),
		zap.Int("event", req.Event),
		zap.String("kind", req.Kind),
	)
	c.JSON(http.StatusOK, &api.OverrideResponse{
		Status: api.Status{Ok: true},
	})
}
