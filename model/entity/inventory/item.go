package inventory

import "time"

// Item represents items table. The reference columns are nullable in the schema
// but every seeded item carries all three.
type Item struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CategoryID  *uint     `gorm:"column:category_id;index:index_items_on_category_id" json:"category_id"`
	SupplierID  *uint     `gorm:"column:supplier_id;index:index_items_on_supplier_id" json:"supplier_id"`
	WarehouseID *uint     `gorm:"column:warehouse_id;index:index_items_on_warehouse_id" json:"warehouse_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Category  *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier  *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

// Resolved reports whether all three references were loaded.
func (i *Item) Resolved() bool {
	return i.Category != nil && i.Supplier != nil && i.Warehouse != nil
}
