package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "profitflow/internal/errors"
)

// WeekLayout is the canonical form of a settlement week key.
const WeekLayout = "2006-01-02"

// WeekKey normalises a week-ending timestamp to its UTC calendar date, so
// calls for the same settlement day at different times map to one week.
func WeekKey(weekEnding time.Time) (string, time.Time) {
	day := weekEnding.UTC().Truncate(24 * time.Hour)
	return day.Format(WeekLayout), day
}

// ParseWeekEnding accepts an RFC 3339 timestamp or a bare date.
func ParseWeekEnding(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "weekEnding is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(WeekLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "weekEnding must be an ISO-8601 date or timestamp")
}

// isDuplicateKey reports a unique constraint violation. Drivers without
// error translation are matched on their message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := strings.ToLower(e.Error())
		if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
			return true
		}
	}
	return false
}

// toJSON encodes a reference or data map for a JSON column; empty maps are stored as NULL.
func toJSON(v map[string]interface{}) (datatypes.JSON, error) {
	if len(v) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// LastWeekEnding returns the most recent Sunday on or before now, as a UTC
// date. Triggers that omit weekEnding settle this week.
func LastWeekEnding(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
