package request

// UpdateSettingsRequest represents the store details printed on bills
type UpdateSettingsRequest struct {
	StoreName     string `json:"store_name" binding:"required,max=255"`
	Address       string `json:"address" binding:"max=255"`
	Phone         string `json:"phone" binding:"max=50"`
	ReceiptFooter string `json:"receipt_footer" binding:"max=255"`
}
