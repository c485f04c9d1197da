package codec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rebeliceyang/lazytable/internal/models"
)

// SortingCodec encodes the sort parameter and checks column ids on the way in
type SortingCodec struct {
	known map[string]bool
}

// NewSortingCodec validates parsed ids against knownColumns.
// With no columns every id is accepted.
func NewSortingCodec(knownColumns ...string) SortingCodec {
	if len(knownColumns) == 0 {
		return SortingCodec{}
	}
	known := make(map[string]bool, len(knownColumns))
	for _, c := range knownColumns {
		known[c] = true
	}
	return SortingCodec{known: known}
}

// SortingCodecFromRow takes the known columns from the keys of a data row
func SortingCodecFromRow(row map[string]any) SortingCodec {
	if row == nil {
		return SortingCodec{}
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	return NewSortingCodec(keys...)
}

// KnownColumns returns the validated column set in sorted order
func (c SortingCodec) KnownColumns() []string {
	cols := make([]string, 0, len(c.known))
	for k := range c.known {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Serialize encodes s as a JSON array of {id, desc}
func (c SortingCodec) Serialize(s models.SortingState) (string, error) {
	if s == nil {
		s = models.SortingState{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode sorting: %w", err)
	}
	return string(data), nil
}

type wireSort struct {
	ID   *string `json:"id"`
	Desc *bool   `json:"desc"`
}

// Parse decodes the sort parameter. Every entry needs a string id and a boolean desc,
// and an unknown column rejects the whole list.
func (c SortingCodec) Parse(s string) (models.SortingState, error) {
	var entries []wireSort
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return nil, fmt.Errorf("%w: sort: %v", ErrParseFailure, err)
	}

	out := make(models.SortingState, 0, len(entries))
	for i, e := range entries {
		if e.ID == nil || e.Desc == nil {
			return nil, fmt.Errorf("%w: sort entry %d: id and desc are required", ErrParseFailure, i)
		}
		if c.known != nil && !c.known[*e.ID] {
			return nil, fmt.Errorf("%w: sort entry %d: unknown column %q", ErrParseFailure, i, *e.ID)
		}
		out = append(out, models.SortEntry{ID: *e.ID, Desc: *e.Desc})
	}
	return out, nil
}

// ParseOr returns def when s cannot be parsed
func (c SortingCodec) ParseOr(s string, def models.SortingState) models.SortingState {
	parsed, err := c.Parse(s)
	if err != nil {
		return def.Clone()
	}
	return parsed
}

// ParseSortShorthand reads the config form "-createdAt,title",
// where a leading "-" sorts descending.
func ParseSortShorthand(s string) (models.SortingState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out models.SortingState
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		id := strings.TrimSpace(strings.TrimLeft(part, "+-"))
		if id == "" {
			return nil, fmt.Errorf("invalid sort %q: empty column", s)
		}
		if _, dup := out.Direction(id); dup {
			return nil, fmt.Errorf("invalid sort %q: column %q listed twice", s, id)
		}
		out = append(out, models.SortEntry{ID: id, Desc: desc})
	}
	return out, nil
}

// FormatSortShorthand is the inverse of ParseSortShorthand
func FormatSortShorthand(s models.SortingState) string {
	parts := make([]string, len(s))
	for i, e := range s {
		if e.Desc {
			parts[i] = "-" + e.ID
		} else {
			parts[i] = e.ID
		}
	}
	return strings.Join(parts, ",")
}
