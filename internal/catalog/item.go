package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a catalog entry lacks one of its required keys.
var ErrMissingField = errors.New("catalog item missing required field")

// Item is one catalog entry.
type Item struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Link        string `json:"link"`
}

// UnmarshalJSON decodes an item and rejects entries where any of the four
// fields is absent or null. Unknown keys are ignored.
func (i *Item) UnmarshalJSON(data []byte) error {
	if i == nil {
		return errors.New("cannot unmarshal into nil Item")
	}

	var aux struct {
		ContentType *string `json:"content_type"`
		Title       *string `json:"title"`
		Summary     *string `json:"summary"`
		Link        *string `json:"link"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"content_type", aux.ContentType},
		{"title", aux.Title},
		{"summary", aux.Summary},
		{"link", aux.Link},
	}
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	*i = Item{
		ContentType: *aux.ContentType,
		Title:       *aux.Title,
		Summary:     *aux.Summary,
		Link:        *aux.Link,
	}
	return nil
}

// DecodeItems parses a JSON array of catalog entries.
// Anything other than an array of well-formed items is an error.
func DecodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("catalog payload is not a JSON array")
	}
	return items, nil
}
