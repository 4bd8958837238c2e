package models

import (
	"gorm.io/gorm"
)

const (
	OverrideKindNone  = "none"
	OverrideKindSkip  = "skip"
	OverrideKindEject = "eject"
)

type OverrideKind = string

func IsValidOverrideKind(kind OverrideKind) bool {
	switch kind {
	case OverrideKindNone, OverrideKindSkip, OverrideKindEject:
		return true
	default:
		return false
	}
}

// Override is a manually recorded exception to the computed last-place
// outcome for a single gameweek. At most one row per (league, event);
// later saves overwrite earlier ones.
type Override struct {
	gorm.Model

	LeagueID int `gorm:"uniqueIndex:idx_overrides"`
	Event    int `gorm:"uniqueIndex:idx_overrides"`

	Kind OverrideKind
	Note string
}
