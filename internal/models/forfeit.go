package models

import (
	"gorm.io/gorm"
)

// ForfeitNote is the free-text forfeit ledger for one league entry,
// edited from the overview page.
type ForfeitNote struct {
	gorm.Model

	LeagueID int `gorm:"uniqueIndex:idx_forfeit_notes"`
	Entry    int `gorm:"uniqueIndex:idx_forfeit_notes"`

	Notes string
}
