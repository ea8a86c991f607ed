//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexList holds a user-supplied list that may arrive either as a delimited
// string ("a, b" or newline separated lines) or as a JSON array of strings or objects.
type FlexList struct {
	Text  string
	Items []any
}

// TextList builds a FlexList from a raw delimited string
func TextList(text string) FlexList {
	return FlexList{Text: text}
}

// ItemList builds a FlexList from pre-structured items
func ItemList(items ...any) FlexList {
	return FlexList{Items: items}
}

// IsEmpty reports whether the list carries no text and no items
func (f FlexList) IsEmpty() bool {
	return strings.TrimSpace(f.Text) == "" && len(f.Items) == 0
}

// UnmarshalJSON accepts a string, an array, or null.
func (f *FlexList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = FlexList{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexList{Text: s}
	case '[':
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*f = FlexList{Items: items}
	default:
		return fmt.Errorf("expected string or array, got %s", string(trimmed))
	}
	return nil
}

// MarshalJSON writes the items when present, otherwise the raw text.
func (f FlexList) MarshalJSON() ([]byte, error) {
	if f.Items != nil {
		return json.Marshal(f.Items)
	}
	return json.Marshal(f.Text)
}
