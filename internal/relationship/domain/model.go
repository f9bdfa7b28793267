package domain

import "time"

// Relationship is the per-user start date of a relationship. StartDate is the
// calendar day stored as UTC midnight.
type Relationship struct {
	UserID      int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	StartDate   time.Time `gorm:"column:start_date;not null"`
	PartnerName *string   `gorm:"column:partner_name;type:text"`
}

func (Relationship) TableName() string { return "relationships" }

func (r *Relationship) Partner() string {
	if r == nil || r.PartnerName == nil {
		return ""
	}
	return *r.PartnerName
}
