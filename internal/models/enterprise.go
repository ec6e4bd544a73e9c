package models

import "github.com/uptrace/bun"

// Enterprise is the external party that may reserve at most one booth.
// Its lifecycle is owned elsewhere; this service only reads it.
type Enterprise struct {
	bun.BaseModel `bun:"table:enterprises"`

	ID          string `bun:"id,pk" json:"id,omitempty"`
	CompanyName string `bun:"company_name,notnull" json:"companyName"`
	Email       string `bun:"email,unique,notnull" json:"email"`
}
