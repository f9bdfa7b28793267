package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"github.com/spf13/viper"
)

//go:embed catalog.yml
var defaultCatalog []byte

// Catalog holds the process-wide static tables: the global holiday list and
// the premium feature catalog.
type Catalog struct {
	Currency string         `mapstructure:"currency"`
	Holidays []HolidayEntry `mapstructure:"holidays"`
	Features []FeatureEntry `mapstructure:"features"`
}

type HolidayEntry struct {
	Name string `mapstructure:"name"`
	Date string `mapstructure:"date"`
}

type FeatureEntry struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Cost        int    `mapstructure:"cost"`
	Description string `mapstructure:"description"`
}

// LoadCatalog reads the catalog from path, or from the embedded default when
// path is empty.
func LoadCatalog(path string) (Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
		}
	} else {
		if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
			return Catalog{}, fmt.Errorf("read embedded catalog: %w", err)
		}
	}

	var cat Catalog
	if err := v.UnmarshalKey("catalog", &cat); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateCatalog(cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func validateCatalog(cat Catalog) error {
	if len(cat.Holidays) == 0 {
		return errors.New("catalog.holidays cannot be empty")
	}

	names := make(map[string]struct{}, len(cat.Holidays))
	for i, h := range cat.Holidays {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			return fmt.Errorf("catalog.holidays[%d]: empty name", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("catalog.holidays[%d]: duplicate name %q", i, name)
		}
		names[name] = struct{}{}
		if _, err := occurrence.ParseMonthDay(h.Date); err != nil {
			return fmt.Errorf("catalog.holidays[%d] %q: %w", i, name, err)
		}
	}

	ids := make(map[string]struct{}, len(cat.Features))
	for i, f := range cat.Features {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return fmt.Errorf("catalog.features[%d]: empty id", i)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("catalog.features[%d]: duplicate id %q", i, id)
		}
		ids[id] = struct{}{}
		if f.Cost <= 0 {
			return fmt.Errorf("catalog.features[%d] %q: cost must be positive", i, id)
		}
	}
	return nil
}
