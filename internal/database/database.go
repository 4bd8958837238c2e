package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"moul.io/zapgorm2"

	"github.com/bigredeye/forfeits/internal/config"
	"github.com/bigredeye/forfeits/internal/models"
)

type DataBase struct {
	*gorm.DB
}

// StoreError marks persistence failures so the web layer can render
// them inline instead of crashing.
type StoreError struct {
	nested error
}

func (e *StoreError) Error() string {
	return e.nested.Error()
}

func (e *StoreError) Unwrap() error {
	return e.nested
}

func IsStoreError(err error) bool {
	storeError := &StoreError{}
	return errors.As(err, &storeError)
}

func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{err}
}

func MakeDSN(conf *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		conf.DataBase.Host,
		conf.DataBase.Port,
		conf.DataBase.User,
		conf.DataBase.Pass,
		conf.DataBase.Name,
	)
}

func OpenDataBase(logger *zap.Logger, dsn string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: zapLogger,
		})
		if err == nil {
			return nil
		}
		perr := &pgconn.PgError{}
		if errors.As(err, &perr) {
			// The server is up but rejected us (bad credentials,
			// missing database); retrying won't help.
			return backoff.Permanent(err)
		}
		logger.Warn("Failed to connect to the database, retrying", zap.Error(err))
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, err
	}

	err := db.AutoMigrate(&models.Override{}, &models.ForfeitNote{})
	if err != nil {
		return nil, err
	}

	return &DataBase{db}, nil
}

// SetOverride records an override for the gameweek, replacing any
// previous one. Saving the same arguments twice is a no-op.
func (db *DataBase) SetOverride(leagueID, event int, kind models.OverrideKind, note string) error {
	override := &models.Override{
		LeagueID: leagueID,
		Event:    event,
		Kind:     kind,
		Note:     note,
	}
	return wrapStore(db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "league_id"}, {Name: "event"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "note", "updated_at"}),
	}).Create(override).Error)
}

// GetOverride returns nil when no override was ever recorded for the
// gameweek. An override explicitly saved with kind "none" is returned
// as-is, so callers can tell a cleared override from a missing one.
func (db *DataBase) GetOverride(leagueID, event int) (*models.Override, error) {
	var override models.Override
	err := db.First(&override, "league_id = ? AND event = ?", leagueID, event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStore(err)
	}
	return &override, nil
}

func (db *DataBase) ListOverrides(leagueID int) (overrides []models.Override, err error) {
	overrides = make([]models.Override, 0)
	err = db.Find(&overrides, "league_id = ?", leagueID).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	return
}

func (db *DataBase) RemoveOverride(leagueID, event int) error {
	return wrapStore(db.
		Where("league_id = ? AND event = ?", leagueID, event).
		Delete(models.Override{}).
		Error)
}

func (db *DataBase) SaveForfeitNotes(leagueID int, notes []models.ForfeitNote) error {
	if len(notes) == 0 {
		return nil
	}
	for i := range notes {
		notes[i].LeagueID = leagueID
	}
	return wrapStore(db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "league_id"}, {Name: "entry"}},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
	}).Create(&notes).Error)
}

func (db *DataBase) ListForfeitNotes(leagueID int) (notes []models.ForfeitNote, err error) {
	notes = make([]models.ForfeitNote, 0)
	err = db.Find(&notes, "league_id = ?", leagueID).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	return
}
