package codec

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// Query parameter names
const (
	ParamFilters      = "filters"
	ParamJoinOperator = "joinOperator"
	ParamSort         = "sort"
)

// URLState is everything the table keeps in its query string
type URLState struct {
	Filters models.FiltersState
	Sorting models.SortingState
}

// Defaults are the values implied by an absent parameter
type Defaults struct {
	Filters      []models.Filter
	JoinOperator models.JoinOperator
	Sorting      models.SortingState
}

func (d Defaults) join() models.JoinOperator {
	if d.JoinOperator == "" {
		return models.JoinAnd
	}
	return d.JoinOperator
}

// State returns the state described by an empty query
func (d Defaults) State() URLState {
	return URLState{
		Filters: models.FiltersState{
			Filters:      models.FiltersState{Filters: d.Filters}.Clone().Filters,
			JoinOperator: d.join(),
		},
		Sorting: d.Sorting.Clone(),
	}
}

// Encode returns the query values for s, leaving out parameters equal to their defaults
func Encode(s URLState, def Defaults) (url.Values, error) {
	values := url.Values{}

	if !sameFilters(s.Filters.Filters, def.Filters) {
		raw, err := MarshalFilters(s.Filters.Filters)
		if err != nil {
			return nil, err
		}
		values.Set(ParamFilters, raw)
	}

	if s.Filters.JoinOperator != "" && s.Filters.JoinOperator != def.join() {
		if !s.Filters.JoinOperator.Valid() {
			return nil, fmt.Errorf("invalid join operator %q", s.Filters.JoinOperator)
		}
		values.Set(ParamJoinOperator, string(s.Filters.JoinOperator))
	}

	if !s.Sorting.Equal(def.Sorting) {
		raw, err := SortingCodec{}.Serialize(s.Sorting)
		if err != nil {
			return nil, err
		}
		values.Set(ParamSort, raw)
	}

	return values, nil
}

// EncodeString is Encode rendered as a query string without the leading "?"
func EncodeString(s URLState, def Defaults) (string, error) {
	values, err := Encode(s, def)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// Decode rebuilds URL state. Each parameter is decoded on its own and falls
// back to its default when absent or invalid; the returned errors list the
// parameters that were rejected.
func Decode(values url.Values, a *adapter.Adapter, sorting SortingCodec, def Defaults, opts ...DecodeOption) (URLState, []error) {
	state := def.State()
	var errs []error

	if raw := values.Get(ParamFilters); raw != "" {
		filters, err := UnmarshalFilters(raw, a, opts...)
		if err != nil {
			errs = append(errs, err)
		} else {
			state.Filters.Filters = filters
		}
	}

	if raw := values.Get(ParamJoinOperator); raw != "" {
		join, err := models.ParseJoinOperator(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrParseFailure, err))
		} else {
			state.Filters.JoinOperator = join
		}
	}

	if raw := values.Get(ParamSort); raw != "" {
		parsed, err := sorting.Parse(raw)
		if err != nil {
			errs = append(errs, err)
		} else {
			state.Sorting = parsed
		}
	}

	return state, errs
}

// DecodeString parses a raw query string, with or without a leading "?"
func DecodeString(raw string, a *adapter.Adapter, sorting SortingCodec, def Defaults, opts ...DecodeOption) (URLState, []error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return def.State(), []error{fmt.Errorf("%w: %v", ErrParseFailure, err)}
	}
	return Decode(values, a, sorting, def, opts...)
}

// sameFilters ignores instance ids, which are regenerated for default filters
func sameFilters(a, b []models.Filter) bool {
	if !EqualFilters(a, b) {
		return false
	}
	for i := range a {
		if a[i].State.IsActive != b[i].State.IsActive {
			return false
		}
	}
	return true
}
