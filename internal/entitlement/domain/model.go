package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// FeatureID names a purchasable premium feature.
type FeatureID string

const (
	FeatureAdvancedStats FeatureID = "advanced_stats"
	FeatureAddHoliday    FeatureID = "add_holiday"
	FeatureCompatibility FeatureID = "compatibility"
)

var knownFeatures = map[FeatureID]struct{}{
	FeatureAdvancedStats: {},
	FeatureAddHoliday:    {},
	FeatureCompatibility: {},
}

// ParseFeatureID validates raw against the known feature identifiers.
func ParseFeatureID(raw string) (FeatureID, error) {
	id := FeatureID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownFeatures[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, raw)
	}
	return id, nil
}

type Feature struct {
	ID          FeatureID
	Name        string
	Cost        int
	Description string
}

// Catalog is the immutable set of features offered in the shop, in display order.
type Catalog struct {
	currency string
	features []Feature
	byID     map[FeatureID]Feature
}

func NewCatalog(currency string, features []Feature) (*Catalog, error) {
	c := &Catalog{
		currency: strings.TrimSpace(currency),
		features: make([]Feature, 0, len(features)),
		byID:     make(map[FeatureID]Feature, len(features)),
	}
	for _, f := range features {
		id, err := ParseFeatureID(string(f.ID))
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate feature %q", id)
		}
		f.ID = id
		c.features = append(c.features, f)
		c.byID[id] = f
	}
	return c, nil
}

func (c *Catalog) Currency() string { return c.currency }

func (c *Catalog) Lookup(id FeatureID) (Feature, bool) {
	f, ok := c.byID[id]
	return f, ok
}

func (c *Catalog) List() []Feature {
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// Entitlement is the per-user set of purchased features. The set only grows.
type Entitlement struct {
	UserID            int64                          `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	PurchasedFeatures datatypes.JSONSlice[FeatureID] `gorm:"column:purchased_features;not null"`
	PurchaseDate      time.Time                      `gorm:"column:purchase_date;not null"`
}

func (Entitlement) TableName() string { return "premium_users" }

func (e *Entitlement) Has(id FeatureID) bool {
	if e == nil {
		return false
	}
	for _, f := range e.PurchasedFeatures {
		if f == id {
			return true
		}
	}
	return false
}

// Features returns the purchased set, deduplicated and sorted.
func (e *Entitlement) Features() []FeatureID {
	if e == nil {
		return nil
	}
	seen := make(map[FeatureID]struct{}, len(e.PurchasedFeatures))
	out := make([]FeatureID, 0, len(e.PurchasedFeatures))
	for _, f := range e.PurchasedFeatures {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
