package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("244"),

		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		FieldLabel:   lipgloss.Color("117"),
		Operator:     lipgloss.Color("220"),
		Value:        lipgloss.Color("180"),
		Placeholder:  lipgloss.Color("241"),
		JoinOperator: lipgloss.Color("105"),
		Inactive:     lipgloss.Color("239"),

		TableHeader:      lipgloss.Color("105"),
		TableRowSelected: lipgloss.Color("25"),
		SortIndicator:    lipgloss.Color("150"),
	}
}

// LightTheme returns a theme for light terminals
func LightTheme() Theme {
	return Theme{
		Name: "light",

		Background: lipgloss.Color("255"),
		Foreground: lipgloss.Color("235"),
		Muted:      lipgloss.Color("243"),

		Border:        lipgloss.Color("250"),
		BorderFocused: lipgloss.Color("33"),
		Selection:     lipgloss.Color("253"),
		Cursor:        lipgloss.Color("240"),

		Success: lipgloss.Color("28"),
		Warning: lipgloss.Color("136"),
		Error:   lipgloss.Color("160"),
		Info:    lipgloss.Color("32"),

		FieldLabel:   lipgloss.Color("25"),
		Operator:     lipgloss.Color("130"),
		Value:        lipgloss.Color("94"),
		Placeholder:  lipgloss.Color("247"),
		JoinOperator: lipgloss.Color("91"),
		Inactive:     lipgloss.Color("250"),

		TableHeader:      lipgloss.Color("25"),
		TableRowSelected: lipgloss.Color("153"),
		SortIndicator:    lipgloss.Color("28"),
	}
}
