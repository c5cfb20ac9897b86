package models

import (
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Distributor represents a network or streaming channel that carries shows.
type Distributor struct {
	bun.BaseModel `bun:"table:distributors,alias:d"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,unique,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	WebsiteURL  *string   `bun:"website_url" json:"website_url,omitempty"`
	CountryCode *string   `bun:"country_code" json:"country_code,omitempty"`
	Active      bool      `bun:"active,default:true" json:"active"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Distributions []*ShowDistribution `bun:"rel:has-many,join:id=distributor_id" json:"distributions,omitempty"`
	ReleaseDates  []*ReleaseDate      `bun:"rel:has-many,join:id=distributor_id" json:"release_dates,omitempty"`
}

// Validate checks name presence and the optional URL and country formats.
func (d *Distributor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("distributor name is required")
	}
	if d.WebsiteURL != nil && *d.WebsiteURL != "" {
		if !strings.HasPrefix(*d.WebsiteURL, "http://") && !strings.HasPrefix(*d.WebsiteURL, "https://") {
			return errors.New("website URL must be http or https")
		}
	}
	if d.CountryCode != nil && *d.CountryCode != "" && len(*d.CountryCode) != 2 {
		return errors.New("country code must be two letters")
	}
	return nil
}
