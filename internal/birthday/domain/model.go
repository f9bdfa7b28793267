package domain

import (
	"time"

	"github.com/smallbiznis/togetherbot/internal/occurrence"
)

// Birthday is a named yearly date. Only the month and day of Date are
// meaningful; the stored year is whatever year the record was written in.
type Birthday struct {
	UserID int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Name   string    `gorm:"column:name;primaryKey;type:text"`
	Date   time.Time `gorm:"column:date;not null"`
}

func (Birthday) TableName() string { return "birthdays" }

func (b Birthday) MonthDay() occurrence.MonthDay {
	return occurrence.FromDate(b.Date.UTC())
}

// Upcoming is a birthday resolved against a reference day.
type Upcoming struct {
	Name      string
	Date      occurrence.MonthDay
	Next      time.Time
	DaysUntil int
}
