package inventory

import "time"

// Warehouse represents warehouses table. Location is free text.
type Warehouse struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Location  string    `gorm:"column:location;type:varchar(255);not null" json:"location"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}
