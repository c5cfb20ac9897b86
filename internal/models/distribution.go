package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ShowDistribution links a show to a distributor for one region. The
// (show, distributor, region) triple is unique; contract dates on an
// existing link are never overwritten by ingestion.
type ShowDistribution struct {
	bun.BaseModel `bun:"table:tv_show_distributors,alias:tsd"`

	ID                int64            `bun:"id,pk,autoincrement" json:"id"`
	ShowID            int64            `bun:"tv_show_id,notnull,unique:show_distributor_region" json:"tv_show_id"`
	DistributorID     int64            `bun:"distributor_id,notnull,unique:show_distributor_region" json:"distributor_id"`
	Region            string           `bun:"region,notnull,default:'global',unique:show_distributor_region" json:"region"`
	DistributionType  DistributionType `bun:"distribution_type" json:"distribution_type,omitempty"`
	ContractStartDate *time.Time       `bun:"contract_start_date" json:"contract_start_date,omitempty"`
	ContractEndDate   *time.Time       `bun:"contract_end_date" json:"contract_end_date,omitempty"`
	Exclusive         bool             `bun:"exclusive,default:false" json:"exclusive"`
	CreatedAt         time.Time        `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	ShowRef     *Show        `bun:"rel:belongs-to,join:tv_show_id=id" json:"-"`
	Distributor *Distributor `bun:"rel:belongs-to,join:distributor_id=id" json:"-"`
}

// Validate checks parent references and contract date ordering.
func (sd *ShowDistribution) Validate() error {
	if sd.ShowID == 0 || sd.DistributorID == 0 {
		return errors.New("distribution must reference a show and a distributor")
	}
	if sd.Region == "" {
		return errors.New("region is required")
	}
	if sd.ContractStartDate != nil && sd.ContractEndDate != nil &&
		!sd.ContractEndDate.After(*sd.ContractStartDate) {
		return errors.New("contract end date must be after start date")
	}
	return nil
}
