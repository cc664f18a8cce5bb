package models

import "time"

// HumanResource represents a request for personnel at a relief site. The
// headcount_need/headcount_got pair follows the same invariant as a supply
// item's total_number/received_count.
type HumanResource struct {
	ID            string    `gorm:"column:human_resource_id;primaryKey;type:varchar(50)" json:"id"`
	Org           string    `gorm:"column:org;type:varchar(100);not null" json:"org"`
	Address       string    `gorm:"column:address;type:varchar(255);not null" json:"address"`
	Phone         *string   `gorm:"column:phone;type:varchar(50)" json:"phone"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	IsCompleted   bool      `gorm:"column:is_completed;default:false" json:"is_completed"`
	RoleName      string    `gorm:"column:role_name;type:varchar(100);not null" json:"role_name"`
	RoleType      string    `gorm:"column:role_type;type:varchar(50);not null" json:"role_type"`
	RoleStatus    string    `gorm:"column:role_status;type:varchar(20);not null;default:'pending'" json:"role_status"`
	HeadcountNeed int       `gorm:"column:headcount_need;not null" json:"headcount_need"`
	HeadcountGot  int       `gorm:"column:headcount_got;not null;default:0" json:"headcount_got"`
	Notes         *string   `gorm:"column:notes;type:text" json:"notes"`
	EditPin       *string   `gorm:"column:edit_pin;type:varchar(6)" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// PinMatches reports whether a submitted PIN authorizes edits on this record.
func (h *HumanResource) PinMatches(pin string) bool {
	return h.EditPin == nil || *h.EditPin == "" || *h.EditPin == pin
}
