package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/internal/database"
	"github.com/bigredeye/forfeits/internal/forfeits"
	"github.com/bigredeye/forfeits/internal/fpl"
	"github.com/bigredeye/forfeits/internal/models"
	"github.com/bigredeye/forfeits/internal/standings"
)

type pagesService struct {
	webService
}

func setupPagesService(server *server, r *gin.Engine) {
	s := pagesService{webService{server, server.config, server.logger}}

	r.GET("/", s.overview)
	r.GET("/gameweek", s.gameweek)
	r.GET("/chronology", s.chronology)

	r.POST("/league", s.applyLeague)
	r.POST("/override", s.saveOverride)
	r.POST("/forfeits", s.saveForfeits)
}

// leagueView is everything one page render needs: fresh FPL data plus
// the persisted overrides and notes for the selected league.
type leagueView struct {
	LeagueID  int
	League    *fpl.League
	Entries   []fpl.Entry
	Scores    []fpl.GameweekScore
	First     int
	Last      int
	Gameweeks []int
	Overrides map[int]*models.Override
	Notes     []models.ForfeitNote
}

const (
	sessionLeagueID  = "league_id"
	sessionFormError = "form_error"
	sessionFormEvent = "form_event"
	sessionFormKind  = "form_kind"
	sessionFormNote  = "form_note"
)

func (s pagesService) leagueID(c *gin.Context) int {
	session := sessions.Default(c)
	if v, ok := session.Get(sessionLeagueID).(int); ok && v > 0 {
		return v
	}
	return s.config.League.DefaultID
}

func (s pagesService) loadView(c *gin.Context) (*leagueView, error) {
	leagueID := s.leagueID(c)

	league, entries, err := s.server.fpl.LeagueEntries(leagueID)
	if err != nil {
		return nil, err
	}
	scores, err := s.server.fpl.GameweekScores(entries)
	if err != nil {
		return nil, err
	}

	overrides, err := s.server.db.ListOverrides(leagueID)
	if err != nil {
		return nil, err
	}
	notes, err := s.server.db.ListForfeitNotes(leagueID)
	if err != nil {
		return nil, err
	}

	first, last := fpl.SeasonRange(league, scores)
	gameweeks := make([]int, 0, last-first+1)
	for gw := first; gw <= last; gw++ {
		gameweeks = append(gameweeks, gw)
	}

	return &leagueView{
		LeagueID:  leagueID,
		League:    league,
		Entries:   entries,
		Scores:    scores,
		First:     first,
		Last:      last,
		Gameweeks: gameweeks,
		Overrides: forfeits.OverridesByEvent(overrides),
		Notes:     notes,
	}, nil
}

type overrideForm struct {
	Event int
	Kind  string
	Note  string
}

type basePage struct {
	Title     string
	LeagueID  int
	Gameweeks []int
	Form      overrideForm
	Error     string
	Message   string
}

// makeBasePage pops any flash state left by a previous form submit, so
// a failed save re-renders with the user's input and an inline error.
func (s pagesService) makeBasePage(c *gin.Context, title string, view *leagueView) basePage {
	page := basePage{
		Title:    title,
		LeagueID: s.leagueID(c),
		Form:     overrideForm{Kind: models.OverrideKindNone},
	}
	if view != nil {
		page.Gameweeks = view.Gameweeks
		page.Form.Event = view.Last
		if view.League != nil && view.League.Name != "" {
			page.Title = view.League.Name + " " + title
		}
	}

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		if msg, ok := flashes[0].(string); ok {
			page.Message = msg
		}
	}
	if v, ok := session.Get(sessionFormError).(string); ok {
		page.Error = v
	}
	if v, ok := session.Get(sessionFormEvent).(int); ok {
		page.Form.Event = v
	}
	if v, ok := session.Get(sessionFormKind).(string); ok {
		page.Form.Kind = v
	}
	if v, ok := session.Get(sessionFormNote).(string); ok {
		page.Form.Note = v
	}
	session.Delete(sessionFormError)
	session.Delete(sessionFormEvent)
	session.Delete(sessionFormKind)
	session.Delete(sessionFormNote)
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}

	return page
}

// userMessage translates internal failures into the inline message shown
// on the page. The process never crashes on these.
func userMessage(err error) string {
	switch {
	case fpl.IsFetchError(err):
		return fmt.Sprintf("Failed to fetch league data from FPL: %s", err)
	case database.IsStoreError(err):
		return fmt.Sprintf("Failed to access the forfeits database: %s", err)
	default:
		return err.Error()
	}
}

func (s pagesService) errorPage(c *gin.Context, title string, err error) basePage {
	s.log.Warn("Failed to load league view", zap.Error(err))
	page := s.makeBasePage(c, title, nil)
	page.Error = userMessage(err)
	return page
}

type overviewPage struct {
	basePage
	Rows []forfeits.OverviewRow
}

func (s pagesService) overview(c *gin.Context) {
	view, err := s.loadView(c)
	if err != nil {
		c.HTML(http.StatusOK, "/overview.tmpl", overviewPage{basePage: s.errorPage(c, "Forfeits", err)})
		return
	}

	chronology := forfeits.Chronology(view.Scores, view.First, view.Last, view.Overrides)
	rows := forfeits.Overview(view.Entries, chronology, view.Notes)

	c.HTML(http.StatusOK, "/overview.tmpl", overviewPage{
		basePage: s.makeBasePage(c, "Forfeits", view),
		Rows:     rows,
	})
}

type gameweekPage struct {
	basePage
	Gameweek int
	Order    standings.Order
	Snapshot []standings.Row
}

func (s pagesService) gameweek(c *gin.Context) {
	view, err := s.loadView(c)
	if err != nil {
		c.HTML(http.StatusOK, "/gameweek.tmpl", gameweekPage{
			basePage: s.errorPage(c, "Gameweek", err),
			Order:    standings.OrderDescending,
		})
		return
	}

	page := gameweekPage{
		basePage: s.makeBasePage(c, "Gameweek", view),
		Gameweek: view.Last,
		Order:    standings.OrderDescending,
	}

	if raw := c.Query("gw"); raw != "" {
		gw, err := strconv.Atoi(raw)
		if err == nil {
			err = standings.ValidateGameweek(gw, view.First, view.Last)
		}
		if err != nil {
			page.Error = err.Error()
			c.HTML(http.StatusOK, "/gameweek.tmpl", page)
			return
		}
		page.Gameweek = gw
	}

	order, err := standings.ParseOrder(c.Query("order"))
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusOK, "/gameweek.tmpl", page)
		return
	}
	page.Order = order

	page.Snapshot = standings.Snapshot(view.Scores, view.Entries, page.Gameweek, page.Order)
	c.HTML(http.StatusOK, "/gameweek.tmpl", page)
}

type chronologyRow struct {
	Event int
	Label string
	Note  string
}

type chronologyPage struct {
	basePage
	Results []chronologyRow
}

func chronologyLabel(result *forfeits.GameweekResult, entries map[int]fpl.Entry) string {
	switch result.Outcome {
	case forfeits.OutcomeEjected:
		return "None (ejected)"
	case forfeits.OutcomeSkipped:
		return "None (skipped)"
	case forfeits.OutcomeNoData:
		return "None"
	}
	if len(result.LastEntries) == 0 {
		return "None"
	}

	labels := make([]string, 0, len(result.LastEntries))
	for _, id := range result.LastEntries {
		entry, found := entries[id]
		if !found {
			labels = append(labels, strconv.Itoa(id))
			continue
		}
		labels = append(labels, fmt.Sprintf("%s (%s)", entry.Name, entry.PlayerName))
	}
	return strings.Join(labels, ", ")
}

func (s pagesService) chronology(c *gin.Context) {
	view, err := s.loadView(c)
	if err != nil {
		c.HTML(http.StatusOK, "/chronology.tmpl", chronologyPage{basePage: s.errorPage(c, "Chronology", err)})
		return
	}

	entries := make(map[int]fpl.Entry, len(view.Entries))
	for _, entry := range view.Entries {
		entries[entry.ID] = entry
	}

	chronology := forfeits.Chronology(view.Scores, view.First, view.Last, view.Overrides)
	results := make([]chronologyRow, 0, len(chronology))
	for i := range chronology {
		results = append(results, chronologyRow{
			Event: chronology[i].Event,
			Label: chronologyLabel(&chronology[i], entries),
			Note:  chronology[i].Note,
		})
	}

	c.HTML(http.StatusOK, "/chronology.tmpl", chronologyPage{
		basePage: s.makeBasePage(c, "Chronology", view),
		Results:  results,
	})
}

func (s pagesService) redirectBack(c *gin.Context) {
	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}

func (s pagesService) failForm(c *gin.Context, message string, form *overrideForm) {
	session := sessions.Default(c)
	session.Set(sessionFormError, message)
	if form != nil {
		session.Set(sessionFormEvent, form.Event)
		session.Set(sessionFormKind, form.Kind)
		session.Set(sessionFormNote, form.Note)
	}
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}
	s.redirectBack(c)
}

func (s pagesService) flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}
	s.redirectBack(c)
}

// applyLeague changes the selected league. The default is only replaced
// on an explicit submit; nothing refetches while the user is typing.
func (s pagesService) applyLeague(c *gin.Context) {
	raw := c.PostForm("league")
	leagueID, err := strconv.Atoi(raw)
	if err != nil || leagueID <= 0 {
		s.failForm(c, "League ID must be digits.", nil)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionLeagueID, leagueID)
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}

	s.log.Info("Applied league", zap.Int("league_id", leagueID))
	c.Redirect(http.StatusFound, "/")
}

func (s pagesService) saveOverride(c *gin.Context) {
	form := overrideForm{
		Kind: c.PostForm("kind"),
		Note: c.PostForm("note"),
	}

	event, err := strconv.Atoi(c.PostForm("event"))
	if err != nil {
		s.failForm(c, "Select a gameweek to override.", &form)
		return
	}
	form.Event = event

	if !models.IsValidOverrideKind(form.Kind) {
		s.failForm(c, fmt.Sprintf("Unknown override action %q.", form.Kind), &form)
		return
	}

	view, err := s.loadView(c)
	if err != nil {
		s.log.Warn("Failed to load league view", zap.Error(err))
		s.failForm(c, userMessage(err), &form)
		return
	}
	if err := standings.ValidateGameweek(event, view.First, view.Last); err != nil {
		s.failForm(c, err.Error(), &form)
		return
	}

	if err := s.server.db.SetOverride(view.LeagueID, event, form.Kind, form.Note); err != nil {
		s.log.Error("Failed to save override", zap.Error(err), zap.Int("event", event))
		s.failForm(c, userMessage(err), &form)
		return
	}

	s.log.Info("Saved override",
		zap.Int("league_id", view.LeagueID),
		zap.Int("event", event),
		zap.String("kind", form.Kind),
	)
	s.flash(c, "Override saved")
}

func (s pagesService) saveForfeits(c *gin.Context) {
	leagueID := s.leagueID(c)

	raw := c.PostFormMap("notes")
	notes := make([]models.ForfeitNote, 0, len(raw))
	for key, value := range raw {
		entry, err := strconv.Atoi(key)
		if err != nil {
			s.failForm(c, fmt.Sprintf("Bad entry id %q.", key), nil)
			return
		}
		notes = append(notes, models.ForfeitNote{Entry: entry, Notes: value})
	}

	if err := s.server.db.SaveForfeitNotes(leagueID, notes); err != nil {
		s.log.Error("Failed to save forfeit notes", zap.Error(err))
		s.failForm(c, userMessage(err), nil)
		return
	}

	s.log.Info("Saved forfeit notes", zap.Int("league_id", leagueID), zap.Int("count", len(notes)))
	s.flash(c, "Saved")
}
