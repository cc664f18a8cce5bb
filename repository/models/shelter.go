package models

import "time"

// Shelter represents an evacuation shelter location
type Shelter struct {
	ID               string    `gorm:"column:shelter_id;primaryKey;type:varchar(50)" json:"id"`
	Name             string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Location         string    `gorm:"column:location;type:varchar(255);not null" json:"location"`
	Phone            string    `gorm:"column:phone;type:varchar(50);not null" json:"phone"`
	Link             *string   `gorm:"column:link;type:varchar(255)" json:"link"`
	Status           string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Capacity         *int      `gorm:"column:capacity" json:"capacity"`
	CurrentOccupancy *int      `gorm:"column:current_occupancy" json:"current_occupancy"`
	AvailableSpaces  *int      `gorm:"column:available_spaces" json:"available_spaces"`
	ContactPerson    *string   `gorm:"column:contact_person;type:varchar(100)" json:"contact_person"`
	Notes            *string   `gorm:"column:notes;type:text" json:"notes"`
	OpeningHours     *string   `gorm:"column:opening_hours;type:varchar(100)" json:"opening_hours"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
