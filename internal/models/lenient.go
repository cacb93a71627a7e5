package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Lenient is a list the backend may send either as a JSON array or as a
// string that contains one. Anything that is not an array decodes to an empty
// list and elements of the wrong shape are dropped.
type Lenient[T any] []T

func (l *Lenient[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("decode list string: %w", err)
		}
		data = []byte(inner)
	}

	*l = decodeItems[T](data)
	return nil
}

func decodeItems[T any](data []byte) []T {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	items := make([]T, 0, len(raw))
	for _, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// TagText is a tag list kept in its JSON-encoded string form. It decodes from
// either representation and always re-encodes as a string.
type TagText string

func (t *TagText) UnmarshalJSON(data []byte) error {
	var tags Lenient[string]
	if err := tags.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = TagText(EncodeTags(tags))
	return nil
}

func (t TagText) Tags() []string {
	return DecodeTags(string(t))
}
