package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Properties is the open string-keyed bag persisted as a JSON column.
type Properties map[string]any

func (p Properties) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal Properties: %w", err)
	}
	return b, nil
}
func (p *Properties) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Properties.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal Properties: %w", err)
	}
	return nil
}

// ConversionStatus maps a conversion name to its recorded outcome: true means
// the derivative bytes exist and are valid, false means generation was
// attempted and failed. Absence means not yet attempted.
type ConversionStatus map[string]bool

func (s ConversionStatus) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal ConversionStatus: %w", err)
	}
	return b, nil
}
func (s *ConversionStatus) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ConversionStatus.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("unmarshal ConversionStatus: %w", err)
	}
	return nil
}

// StringList is a JSON array column (responsive image keys).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("StringList.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(data, l)
}
