package inventory

import "time"

// ItemAttribute represents item_attributes table: a free-form key/value row.
// (item_id, attribute_name) is not unique.
type ItemAttribute struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID         *uint     `gorm:"column:item_id;index:index_item_attributes_on_item_id" json:"item_id"`
	AttributeName  string    `gorm:"column:attribute_name;type:varchar(255);not null" json:"attribute_name"`
	AttributeValue string    `gorm:"column:attribute_value;type:varchar(255);not null" json:"attribute_value"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"-"`
}

func (ItemAttribute) TableName() string {
	return "item_attributes"
}
