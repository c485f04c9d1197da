package models

// FeatureFlag is a toggle that gates which toolbar and bar the table renders
type FeatureFlag string

const (
	FlagAdvancedTable FeatureFlag = "advancedTable"
	FlagFloatingBar   FeatureFlag = "floatingBar"
)

// FeatureFlagInfo describes a flag for display
type FeatureFlagInfo struct {
	Label              string
	Value              FeatureFlag
	TooltipTitle       string
	TooltipDescription string
}

// FeatureFlags is the static list of known toggles
var FeatureFlags = []FeatureFlagInfo{
	{
		Label:              "Advanced table",
		Value:              FlagAdvancedTable,
		TooltipTitle:       "Toggle advanced table",
		TooltipDescription: "A filter and sort builder to filter and sort rows.",
	},
	{
		Label:              "Floating bar",
		Value:              FlagFloatingBar,
		TooltipTitle:       "Toggle floating bar",
		TooltipDescription: "A floating bar that sticks to the top of the table.",
	},
}

// FlagSet is a read-only set of enabled flags
type FlagSet struct {
	enabled map[FeatureFlag]bool
}

// NewFlagSet builds a set from flag values; unknown values are returned separately
func NewFlagSet(values []string) (FlagSet, []string) {
	set := FlagSet{enabled: make(map[FeatureFlag]bool)}
	var unknown []string
	for _, v := range values {
		if _, ok := LookupFeatureFlag(FeatureFlag(v)); !ok {
			unknown = append(unknown, v)
			continue
		}
		set.enabled[FeatureFlag(v)] = true
	}
	return set, unknown
}

// Enabled reports whether flag is on
func (s FlagSet) Enabled(flag FeatureFlag) bool {
	return s.enabled[flag]
}

// With returns a copy of the set with flag toggled
func (s FlagSet) With(flag FeatureFlag, on bool) FlagSet {
	out := FlagSet{enabled: make(map[FeatureFlag]bool, len(s.enabled)+1)}
	for k, v := range s.enabled {
		out.enabled[k] = v
	}
	if on {
		out.enabled[flag] = true
	} else {
		delete(out.enabled, flag)
	}
	return out
}

// LookupFeatureFlag returns the descriptor of a known flag
func LookupFeatureFlag(flag FeatureFlag) (FeatureFlagInfo, bool) {
	for _, info := range FeatureFlags {
		if info.Value == flag {
			return info, true
		}
	}
	return FeatureFlagInfo{}, false
}
