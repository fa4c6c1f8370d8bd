package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Color is a single presentation color. The core stores and compares
// colors but never interprets them.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorList ...
type ColorList []Color

// Value implements driver.Valuer, serializing the list as JSON text
func (l ColorList) Value() (driver.Value, error) {
	if l == nil {
		l = ColorList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *ColorList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("model: cannot scan %T into ColorList", src)
	}
}

// Equal treats a nil list and an empty list as the same value
func (l ColorList) Equal(other ColorList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
