// Package catalog loads the funding opportunity catalog from a yaml file
// and seeds it into the database at startup.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"founderhub/hub/schema"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Opportunity struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Stage       string `yaml:"stage"`

	MinAmount      float64 `yaml:"min_amount"`
	MaxAmount      float64 `yaml:"max_amount"`
	EquityRequired float64 `yaml:"equity_required"`

	Location   string   `yaml:"location"`
	Industries []string `yaml:"industries"`

	ApplicationDeadline *time.Time `yaml:"application_deadline"`
	Website             string     `yaml:"website"`
	ContactEmail        string     `yaml:"contact_email"`

	Active *bool `yaml:"active"`
}

type Catalog struct {
	Opportunities []Opportunity `yaml:"opportunities"`
}

var validTypes = map[string]bool{
	schema.FundingVc:           true,
	schema.FundingAngel:        true,
	schema.FundingGrant:        true,
	schema.FundingCrowdfunding: true,
	schema.FundingAccelerator:  true,
}

// Load reads and validates a catalog file. Every opportunity must have a
// name, a description, and a known type.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("error reading funding catalog %v: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("error parsing funding catalog %v: %w", path, err)
	}

	for i, opp := range catalog.Opportunities {
		if opp.Name == "" || opp.Description == "" {
			return Catalog{}, fmt.Errorf("funding catalog entry %d is missing a name or description", i)
		}
		if !validTypes[opp.Type] {
			return Catalog{}, fmt.Errorf("funding catalog entry %q has unknown type %q", opp.Name, opp.Type)
		}
	}

	return catalog, nil
}

// Seed upserts the catalog into the database keyed by opportunity name.
// Opportunities removed from the file are left in place but can be retired
// by setting active: false.
func Seed(db *gorm.DB, catalog Catalog) error {
	return db.Transaction(func(txn *gorm.DB) error {
		for _, opp := range catalog.Opportunities {
			active := true
			if opp.Active != nil {
				active = *opp.Active
			}

			row := schema.FundingOpportunity{
				Id:                  uuid.New(),
				Name:                opp.Name,
				Description:         opp.Description,
				Type:                opp.Type,
				Stage:               opp.Stage,
				MinAmount:           opp.MinAmount,
				MaxAmount:           opp.MaxAmount,
				EquityRequired:      opp.EquityRequired,
				Location:            opp.Location,
				Industries:          opp.Industries,
				ApplicationDeadline: opp.ApplicationDeadline,
				Website:             opp.Website,
				ContactEmail:        opp.ContactEmail,
				Active:              active,
			}

			var existing schema.FundingOpportunity
			result := txn.Where("name = ?", opp.Name).First(&existing)
			if result.Error == nil {
				row.Id = existing.Id
				row.CreatedAt = existing.CreatedAt
			} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				slog.Error("sql error checking funding opportunity", "name", opp.Name, "error", result.Error)
				return schema.ErrDbAccessFailed
			}

			if result := txn.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row); result.Error != nil {
				slog.Error("sql error seeding funding opportunity", "name", opp.Name, "error", result.Error)
				return schema.ErrDbAccessFailed
			}
		}

		slog.Info("seeded funding catalog", "opportunities", len(catalog.Opportunities))
		return nil
	})
}
