package models

import "time"

const (
	RoleCustomer = "CLIENTE"
	RoleSeller   = "VENDEDOR"
	RoleAdmin    = "ADMIN"
)

const (
	LevelNovice = "Novato"
	LevelPro    = "Pro"
	LevelLegend = "Leyenda"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	BirthDate    time.Time `json:"birth_date"`
	IsStudent    bool      `json:"is_student"`
	ReferralCode string    `gorm:"uniqueIndex" json:"referral_code"`
	Points       int       `json:"points"`
	Level        string    `json:"level"`
	Role         string    `gorm:"type:VARCHAR(20);default:'CLIENTE'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AddPoints accrues loyalty points and recomputes the level ladder.
func (u *User) AddPoints(points int) {
	u.Points += points
	switch {
	case u.Points >= 1000:
		u.Level = LevelLegend
	case u.Points >= 500:
		u.Level = LevelPro
	default:
		u.Level = LevelNovice
	}
}

// Age returns full years elapsed since the birth date.
func (u *User) Age(now time.Time) int {
	years := now.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
