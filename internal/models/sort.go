package models

// SortEntry orders rows by one column
type SortEntry struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// SortingState is the ordered sort list, primary key first
type SortingState []SortEntry

// Equal compares ids and directions position by position
func (s SortingState) Equal(other SortingState) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sort list
func (s SortingState) Clone() SortingState {
	if s == nil {
		return nil
	}
	out := make(SortingState, len(s))
	copy(out, s)
	return out
}

// Direction returns the sort direction of a column, if it is sorted
func (s SortingState) Direction(id string) (desc bool, ok bool) {
	for _, e := range s {
		if e.ID == id {
			return e.Desc, true
		}
	}
	return false, false
}

// Cycle moves a column through ascending, descending and unsorted.
// A newly sorted column becomes the primary key.
func (s SortingState) Cycle(id string) SortingState {
	for i, e := range s {
		if e.ID != id {
			continue
		}
		out := s.Clone()
		if !e.Desc {
			out[i].Desc = true
			return out
		}
		return append(out[:i], out[i+1:]...)
	}
	return append(SortingState{{ID: id}}, s...)
}
