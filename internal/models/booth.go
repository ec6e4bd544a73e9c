package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BoothStatus string

const (
	StatusPending  BoothStatus = "Pending"
	StatusAccepted BoothStatus = "Accepted"
	StatusRejected BoothStatus = "Rejected"
)

// Valid reports whether s is one of the three known reservation statuses.
func (s BoothStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Booth is a physical exhibition space. The human-facing number is unique
// across all booths; category and enterprise links are both optional.
type Booth struct {
	bun.BaseModel `bun:"table:booths"`

	ID                    string      `bun:"id,pk" json:"id"`
	Name                  string      `bun:"name,notnull" json:"name"`
	Description           string      `bun:"description,notnull" json:"description"`
	Number                int         `bun:"number,unique,notnull" json:"number"`
	Dimensions            Dimensions  `bun:"dimensions,type:jsonb" json:"dimensions"`
	PriceWithoutAddons    float64     `bun:"price_without_addons,notnull" json:"priceWithoutAddons"`
	FinalPrice            float64     `bun:"final_price,notnull" json:"finalPrice"`
	Status                BoothStatus `bun:"status,notnull,default:'Pending'" json:"status"`
	Addons                []Addon     `bun:"addons,type:jsonb" json:"addons"`
	Image                 *string     `bun:"image" json:"image"`
	CategoryID            *string     `bun:"category_id" json:"categoryId"`
	EnterpriseID          *string     `bun:"enterprise_id" json:"enterpriseId"`
	ReservationAcceptedAt *time.Time  `bun:"reservation_accepted_at" json:"reservationAcceptedAt"`
	CreatedAt             time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt             time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Category   *Category   `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Enterprise *Enterprise `bun:"rel:belongs-to,join:enterprise_id=id" json:"enterprise,omitempty"`
}
