package models

// SupplyItem represents one requested material line under a Supply
type SupplyItem struct {
	ID            string  `gorm:"column:supply_item_id;primaryKey;type:varchar(50)" json:"id"`
	SupplyID      string  `gorm:"column:supply_id;type:varchar(50);index;not null" json:"supply_id"`
	Supply        *Supply `gorm:"foreignKey:SupplyID" json:"-"`
	TotalNumber   int     `gorm:"column:total_number;not null" json:"total_number"`
	ReceivedCount int     `gorm:"column:received_count;not null;default:0" json:"received_count"`
	Tag           string  `gorm:"column:tag;type:varchar(50)" json:"tag"`
	Name          *string `gorm:"column:name;type:varchar(100)" json:"name"`
	Unit          *string `gorm:"column:unit;type:varchar(50)" json:"unit"`
}

// Remaining returns the undistributed quantity still needed for this line.
func (i *SupplyItem) Remaining() int {
	return i.TotalNumber - i.ReceivedCount
}

// Fulfilled reports whether the line is fully received.
func (i *SupplyItem) Fulfilled() bool {
	return i.ReceivedCount >= i.TotalNumber
}
