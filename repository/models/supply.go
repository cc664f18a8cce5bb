package models

import "time"

// Supply represents a relief-supply request grouping requested item lines
type Supply struct {
	ID        string    `gorm:"column:supply_id;primaryKey;type:varchar(50)" json:"id"`
	Name      *string   `gorm:"column:name;type:varchar(100)" json:"name"`
	Address   *string   `gorm:"column:address;type:varchar(255)" json:"address"`
	Phone     *string   `gorm:"column:phone;type:varchar(50)" json:"phone"`
	Notes     *string   `gorm:"column:notes;type:text" json:"notes"`
	EditPin   *string   `gorm:"column:edit_pin;type:varchar(6)" json:"-"` // Never serialized on reads
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []SupplyItem `gorm:"foreignKey:SupplyID;constraint:OnDelete:CASCADE" json:"supplies"`
}

// PinMatches reports whether a submitted PIN authorizes edits on this supply.
// A supply created without a PIN is unprotected and accepts any value.
func (s *Supply) PinMatches(pin string) bool {
	return s.EditPin == nil || *s.EditPin == "" || *s.EditPin == pin
}
