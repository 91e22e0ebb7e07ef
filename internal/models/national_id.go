package models

import "time"

// NationalID mirrors the government identity registry. Rows are loaded as
// seed data and looked up during worker registration; the public API never
// creates them.
type NationalID struct {
	BaseModel
	IDNumber    string    `gorm:"size:16;uniqueIndex;not null" json:"id_number"`
	FullName    string    `gorm:"size:100;not null" json:"full_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `gorm:"size:10" json:"gender"`
}
