package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents the channel a payment (or a purchase) went through
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodPix    PaymentMethod = 1
	PaymentMethodDebit  PaymentMethod = 2
	PaymentMethodCredit PaymentMethod = 3
)

// PaymentMethods lists every method in display order
var PaymentMethods = [...]PaymentMethod{
	PaymentMethodCash,
	PaymentMethodPix,
	PaymentMethodDebit,
	PaymentMethodCredit,
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "cash"
	case PaymentMethodPix:
		return "pix"
	case PaymentMethodDebit:
		return "debit"
	case PaymentMethodCredit:
		return "credit"
	}
	return fmt.Sprintf("PaymentMethod(%d)", int(m))
}

// Label returns the short label printed on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodPix:
		return "PIX"
	case PaymentMethodDebit:
		return "Debito"
	case PaymentMethodCredit:
		return "Credito"
	}
	return m.String()
}

// IsValid reports whether m is one of the known methods
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodCredit
}

// ParsePaymentMethod parses the lowercase wire name of a method
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "cash":
		return PaymentMethodCash, nil
	case "pix":
		return PaymentMethodPix, nil
	case "debit":
		return PaymentMethodDebit, nil
	case "credit":
		return PaymentMethodCredit, nil
	}
	return PaymentMethodCash, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).IsValid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
