package models_test

import (
	"testing"
	"time"

	"github.com/josuejheymi/backend-levels/models"
	"github.com/stretchr/testify/require"
)

func TestAgeAccountsForBirthdayNotYetReached(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	// Birthday already passed this year.
	passed := models.User{BirthDate: time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, 26, passed.Age(now))

	// Birthday still ahead this year.
	ahead := models.User{BirthDate: time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, 25, ahead.Age(now))

	// Eighteenth birthday is today.
	exact := models.User{BirthDate: time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, 18, exact.Age(now))

	// Eighteenth birthday is tomorrow.
	almost := models.User{BirthDate: time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, 17, almost.Age(now))
}

func TestAddPointsLevelThresholds(t *testing.T) {
	u := models.User{Level: models.LevelNovice}

	u.AddPoints(499)
	require.Equal(t, 499, u.Points)
	require.Equal(t, models.LevelNovice, u.Level)

	u.AddPoints(1)
	require.Equal(t, models.LevelPro, u.Level)

	u.AddPoints(499)
	require.Equal(t, models.LevelPro, u.Level)

	u.AddPoints(1)
	require.Equal(t, models.LevelLegend, u.Level)
}
