package presets

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/models"
)

// scalar accepts null or a string
func scalar(v models.Value) error {
	if v.Kind() == models.ValueList {
		return fmt.Errorf("expected a single value, got a list")
	}
	return nil
}

// list accepts null or a list of strings
func list(v models.Value) error {
	if v.Kind() == models.ValueString {
		return fmt.Errorf("expected a list, got %q", v.String())
	}
	return nil
}

// number accepts an empty value, a number, or up to two numbers for ranges
func number(v models.Value) error {
	return eachNonEmpty(v, 2, func(s string) error {
		if _, err := cast.ToFloat64E(s); err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		return nil
	})
}

// date accepts dates, up to two for ranges, or a day offset relative to today
func date(v models.Value) error {
	return eachNonEmpty(v, 2, func(s string) error {
		if _, err := cast.ToTimeE(s); err == nil {
			return nil
		}
		if _, err := cast.ToIntE(s); err == nil {
			return nil
		}
		return fmt.Errorf("%q is not a date", s)
	})
}

func boolean(v models.Value) error {
	if err := scalar(v); err != nil {
		return err
	}
	if v.IsEmpty() {
		return nil
	}
	if _, err := cast.ToBoolE(v.String()); err != nil {
		return fmt.Errorf("%q is not a boolean", v.String())
	}
	return nil
}

// geometry accepts WKT or a GeoJSON geometry object
func geometry(v models.Value) error {
	if err := scalar(v); err != nil {
		return err
	}
	if v.IsEmpty() {
		return nil
	}
	_, err := ParseGeometry(v.String())
	return err
}

// ParseGeometry decodes a geometry filter value written as WKT or GeoJSON
func ParseGeometry(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		g, err := geojson.UnmarshalGeometry([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("invalid GeoJSON geometry: %w", err)
		}
		if g.Geometry() == nil {
			return nil, fmt.Errorf("GeoJSON geometry is empty")
		}
		return g.Geometry(), nil
	}

	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid WKT geometry: %w", err)
	}
	return g, nil
}

func eachNonEmpty(v models.Value, max int, check func(string) error) error {
	items := v.Strings()
	if len(items) > max {
		return fmt.Errorf("expected at most %d values, got %d", max, len(items))
	}
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}
