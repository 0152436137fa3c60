package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ReceiptPayment is one payment channel with its amount.
type ReceiptPayment struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Receipt is a value object representing a printable table bill.
// It is composed from the table at print time and never stored.
type Receipt struct {
	Header       ReceiptHeader    `json:"header"`
	TableName    string           `json:"table_name"`
	Date         string           `json:"date"`
	Items        []ReceiptItem    `json:"items"`
	SubTotal     float64          `json:"sub_total"`
	SuggestedFee float64          `json:"suggested_fee"`
	ServiceFee   float64          `json:"service_fee"`
	Total        float64          `json:"total"`
	Payments     []ReceiptPayment `json:"payments"`
	Paid         float64          `json:"paid"`
	Due          float64          `json:"due"`
	SplitCount   int              `json:"split_count"`
	PerPerson    float64          `json:"per_person"`
	IsCounter    bool             `json:"is_counter"`
	Footer       string           `json:"footer,omitempty"`
}
