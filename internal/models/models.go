package models

// AppState holds the application state
type AppState struct {
	Width        int
	Height       int
	FocusedPanel PanelType
	ViewMode     ViewMode

	// Table being viewed, as "schema.table" or a demo dataset name
	CurrentTable string
}

// PanelType identifies which panel is focused
type PanelType int

const (
	TablePanel PanelType = iota
	FilterPanel
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	ViewsMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:        80,
		Height:       24,
		FocusedPanel: TablePanel,
		ViewMode:     NormalMode,
	}
}

// ColumnInfo contains column metadata used to infer filter fields
type ColumnInfo struct {
	Name     string
	DataType string
	UDTName  string
	Nullable bool
	IsArray  bool
}
