package entity

import "time"

// StoreSettingsID is the key of the single settings row
const StoreSettingsID = "store"

// StoreSettings holds the restaurant details printed on every bill
type StoreSettings struct {
	ID            string    `gorm:"primaryKey;size:36" json:"-"`
	StoreName     string    `gorm:"size:255;not null" json:"store_name"`
	Address       string    `gorm:"size:255" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	ReceiptFooter string    `gorm:"size:255" json:"receipt_footer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}

// Header returns the receipt header for these settings
func (s *StoreSettings) Header() ReceiptHeader {
	return ReceiptHeader{StoreName: s.StoreName, Address: s.Address, Phone: s.Phone}
}
