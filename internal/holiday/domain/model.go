package domain

import (
	"time"

	"github.com/smallbiznis/togetherbot/internal/occurrence"
)

// Holiday is a named yearly date, either from the global table or added by a user.
type Holiday struct {
	Name     string
	Date     occurrence.MonthDay
	Personal bool
}

// Entry is a holiday resolved against a reference day.
type Entry struct {
	Holiday
	Next      time.Time
	DaysUntil int
}

type MonthGroup struct {
	Month   time.Month
	Entries []Entry
}

// PersonalHoliday is a user-owned holiday. Date keeps the literal "DD.MM" text.
type PersonalHoliday struct {
	UserID int64  `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Name   string `gorm:"column:name;primaryKey;type:text"`
	Date   string `gorm:"column:date;type:text;not null"`
}

func (PersonalHoliday) TableName() string { return "personal_holidays" }

// Holiday converts the record, reporting an error for a corrupt date.
func (p PersonalHoliday) Holiday() (Holiday, error) {
	md, err := occurrence.ParseMonthDay(p.Date)
	if err != nil {
		return Holiday{}, err
	}
	return Holiday{Name: p.Name, Date: md, Personal: true}, nil
}

// StaticTable is the immutable global holiday list, in catalog order.
type StaticTable struct {
	holidays []Holiday
}

func NewStaticTable(holidays []Holiday) *StaticTable {
	cp := make([]Holiday, len(holidays))
	copy(cp, holidays)
	for i := range cp {
		cp[i].Personal = false
	}
	return &StaticTable{holidays: cp}
}

func (t *StaticTable) All() []Holiday {
	out := make([]Holiday, len(t.holidays))
	copy(out, t.holidays)
	return out
}

func (t *StaticTable) Len() int { return len(t.holidays) }

// BotBirthday is the day the bot was created.
var BotBirthday = occurrence.MonthDay{Month: time.November, Day: 15}
