package models

// Request payloads. Numeric fields use pointers so an explicit 0 is
// distinguishable from a missing field; OptionalString fields additionally
// distinguish an explicit null (clear) from an omitted field.

type CategoryCreate struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Dimensions         *Dimensions `json:"dimensions"`
	PriceWithoutAddons *float64    `json:"priceWithoutAddons"`
	Addons             []Addon     `json:"addons"`
	Image              *string     `json:"image"`
}

type CategoryUpdate struct {
	Name               *string        `json:"name"`
	Description        *string        `json:"description"`
	Dimensions         *Dimensions    `json:"dimensions"`
	PriceWithoutAddons *float64       `json:"priceWithoutAddons"`
	Addons             *[]Addon       `json:"addons"`
	Image              OptionalString `json:"image"`
}

type BoothCreate struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Number             *int        `json:"number"`
	Dimensions         *Dimensions `json:"dimensions"`
	PriceWithoutAddons *float64    `json:"priceWithoutAddons"`
	FinalPrice         *float64    `json:"finalPrice"`
	Addons             []Addon     `json:"addons"`
	Image              *string     `json:"image"`
}

type BoothUpdate struct {
	Name               *string        `json:"name"`
	Description        *string        `json:"description"`
	Number             *int           `json:"number"`
	Dimensions         *Dimensions    `json:"dimensions"`
	PriceWithoutAddons *float64       `json:"priceWithoutAddons"`
	FinalPrice         *float64       `json:"finalPrice"`
	Status             *BoothStatus   `json:"status"`
	Addons             *[]Addon       `json:"addons"`
	Image              OptionalString `json:"image"`
	CategoryID         OptionalString `json:"categoryId"`
}

type BulkCategoryUpdate struct {
	BoothIDs   []string       `json:"boothIds"`
	CategoryID OptionalString `json:"categoryId"`
}

type StatusUpdate struct {
	Status BoothStatus `json:"status"`
}
