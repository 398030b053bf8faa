package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// EllipsisMarker is the JSON form of a gap in a pagination window.
const EllipsisMarker = "..."

// PageItem is one entry of a pagination window: either a page number or an
// ellipsis placeholder. It encodes to JSON as a number or "...".
type PageItem struct {
	Number   int
	Ellipsis bool
}

// Page returns a numbered PageItem.
func Page(n int) PageItem { return PageItem{Number: n} }

// Ellipsis returns the gap placeholder.
func Ellipsis() PageItem { return PageItem{Ellipsis: true} }

func (p PageItem) String() string {
	if p.Ellipsis {
		return EllipsisMarker
	}
	return strconv.Itoa(p.Number)
}

func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(EllipsisMarker)
	}
	return []byte(strconv.Itoa(p.Number)), nil
}

func (p *PageItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != EllipsisMarker {
			return fmt.Errorf("invalid page marker %q", s)
		}
		*p = Ellipsis()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid page item: %w", err)
	}
	*p = Page(n)
	return nil
}
