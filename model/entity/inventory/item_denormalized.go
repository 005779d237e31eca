package inventory

import "time"

// ItemDenormalized represents items_denormalized table: an item flattened with the
// names of its category, supplier and warehouse. Rows are a snapshot taken at
// denormalization time and are not kept in sync with later changes.
type ItemDenormalized struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ItemID        uint      `gorm:"column:item_id;not null;index:index_items_denormalized_on_item_id" json:"item_id"`
	CategoryID    uint      `gorm:"column:category_id;not null;index:index_items_denormalized_on_category_id" json:"category_id"`
	CategoryName  string    `gorm:"column:category_name;type:varchar(255)" json:"category_name"`
	SupplierID    uint      `gorm:"column:supplier_id;not null;index:index_items_denormalized_on_supplier_id" json:"supplier_id"`
	SupplierName  string    `gorm:"column:supplier_name;type:varchar(255)" json:"supplier_name"`
	WarehouseID   uint      `gorm:"column:warehouse_id;not null;index:index_items_denormalized_on_warehouse_id" json:"warehouse_id"`
	WarehouseName string    `gorm:"column:warehouse_name;type:varchar(255)" json:"warehouse_name"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Item      *Item      `gorm:"foreignKey:ItemID" json:"-"`
	Category  *Category  `gorm:"foreignKey:CategoryID" json:"-"`
	Supplier  *Supplier  `gorm:"foreignKey:SupplierID" json:"-"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"-"`
}

func (ItemDenormalized) TableName() string {
	return "items_denormalized"
}

// Flatten builds the denormalized row for an item whose references are loaded.
// It returns false when any reference is missing.
func Flatten(item *Item, now time.Time) (ItemDenormalized, bool) {
	if !item.Resolved() {
		return ItemDenormalized{}, false
	}
	return ItemDenormalized{
		Name:          item.Name,
		ItemID:        item.ID,
		CategoryID:    item.Category.ID,
		CategoryName:  item.Category.Name,
		SupplierID:    item.Supplier.ID,
		SupplierName:  item.Supplier.Name,
		WarehouseID:   item.Warehouse.ID,
		WarehouseName: item.Warehouse.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, true
}

// Tables lists every inventory table, children before parents.
var Tables = []string{
	ItemDenormalized{}.TableName(),
	ItemAttribute{}.TableName(),
	Item{}.TableName(),
	Warehouse{}.TableName(),
	Supplier{}.TableName(),
	Category{}.TableName(),
}

// Models lists every inventory entity, parents before children (AutoMigrate order).
func Models() []interface{} {
	return []interface{}{
		&Category{},
		&Supplier{},
		&Warehouse{},
		&Item{},
		&ItemAttribute{},
		&ItemDenormalized{},
	}
}
