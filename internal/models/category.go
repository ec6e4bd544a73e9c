package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Dimensions describes the footprint of a booth or category template, in meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Addon is a named, priced optional extra attached to a category or booth.
type Addon struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// Category is a reusable booth template: dimensions, base price and an
// add-on menu that booths copy when they are assigned to the category.
type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID                 string     `bun:"id,pk" json:"id"`
	Name               string     `bun:"name,unique,notnull" json:"name"`
	Description        string     `bun:"description,notnull" json:"description"`
	Dimensions         Dimensions `bun:"dimensions,type:jsonb" json:"dimensions"`
	PriceWithoutAddons float64    `bun:"price_without_addons,notnull" json:"priceWithoutAddons"`
	Addons             []Addon    `bun:"addons,type:jsonb" json:"addons"`
	Image              *string    `bun:"image" json:"image"`
	CreatedAt          time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	// BoothCount is computed per query, not stored.
	BoothCount int `bun:"booth_count,scanonly" json:"boothCount"`

	// Booths referencing this category, populated on detail lookups only.
	Booths []BoothRef `bun:"-" json:"booths,omitempty"`
}

// BoothRef is the summary of a booth shown inside a category detail.
type BoothRef struct {
	bun.BaseModel `bun:"table:booths"`

	ID     string      `bun:"id" json:"id"`
	Name   string      `bun:"name" json:"name"`
	Number int         `bun:"number" json:"number"`
	Status BoothStatus `bun:"status" json:"status"`
}
