package enum

import "encoding/json"

// WaitLevel classifies how long an undelivered order line has been waiting
type WaitLevel int

const (
	WaitLevelUnknown  WaitLevel = 0
	WaitLevelOK       WaitLevel = 1
	WaitLevelWarning  WaitLevel = 2
	WaitLevelCritical WaitLevel = 3
)

func (l WaitLevel) String() string {
	switch l {
	case WaitLevelOK:
		return "ok"
	case WaitLevelWarning:
		return "warning"
	case WaitLevelCritical:
		return "critical"
	}
	return "unknown"
}

func (l WaitLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
