package enum

import (
	"encoding/json"
	"fmt"
)

// View identifies the screen the floor UI is currently showing
type View int

const (
	ViewDashboard   View = 0
	ViewTableDetail View = 1
	ViewOpenTables  View = 2
	ViewInvoiced    View = 3
	ViewWaitingList View = 4
	ViewMenu        View = 5
	ViewInventory   View = 6
	ViewPurchases   View = 7
	ViewSales       View = 8
)

var viewNames = [...]string{
	"dashboard",
	"table",
	"open",
	"invoiced",
	"waiting",
	"menu",
	"inventory",
	"purchases",
	"sales",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView parses a view name
func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if name == s {
			return View(i), nil
		}
	}
	return ViewDashboard, fmt.Errorf("unknown view %q", s)
}

func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *View) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseView(str)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
