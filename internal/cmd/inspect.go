package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/config"
	"github.com/rebeliceyang/lazytable/internal/models"
)

var inspectAdapter string

var inspectCmd = &cobra.Command{
	Use:   "inspect QUERY",
	Short: "Decode a share query and print its filters and sorting",
	Long: `Decode a query string the way the table does on startup and print the
normalized query followed by the decoded state as JSON. Parameters that fail
to decode fall back to their defaults and are reported on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectAdapter, "adapter", "", "adapter preset (default from config)")
	rootCmd.AddCommand(inspectCmd)
}

type inspectedFilter struct {
	RowID    string            `json:"rowId"`
	ID       string            `json:"id"`
	Type     models.FilterType `json:"type"`
	Operator models.Operator   `json:"operator"`
	Value    models.Value      `json:"value"`
	IsActive bool              `json:"isActive"`
}

type inspectReport struct {
	Query        string              `json:"query"`
	JoinOperator models.JoinOperator `json:"joinOperator"`
	Filters      []inspectedFilter   `json:"filters"`
	Sort         models.SortingState `json:"sort"`
	Rejected     []string            `json:"rejected,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	name := inspectAdapter
	if name == "" {
		name = cfg.Filters.Adapter
	}
	a, err := presets.ByName(name)
	if err != nil {
		return err
	}

	defaults := codec.Defaults{
		JoinOperator: cfg.JoinOperator(),
		Sorting:      cfg.SortDefault(),
	}

	state, errs := codec.DecodeString(args[0], a, codec.NewSortingCodec(), defaults)
	report := inspectReport{
		JoinOperator: state.Filters.JoinOperator,
		Filters:      []inspectedFilter{},
		Sort:         state.Sorting,
	}
	if report.Sort == nil {
		report.Sort = models.SortingState{}
	}
	for _, f := range state.Filters.Filters {
		report.Filters = append(report.Filters, inspectedFilter{
			RowID:    f.ID,
			ID:       f.FieldID,
			Type:     f.Type,
			Operator: f.State.Operator,
			Value:    f.State.Value,
			IsActive: f.State.IsActive,
		})
	}
	for _, err := range errs {
		report.Rejected = append(report.Rejected, err.Error())
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	if report.Query, err = codec.EncodeString(state, defaults); err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "?%s\n%s\n", report.Query, out)
	return nil
}
