package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazytable/internal/db/connection"
	"github.com/rebeliceyang/lazytable/internal/db/metadata"
)

var tablesSchema string

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables that can be opened",
	Long:  `List the tables of every user schema, or of --schema, with their on-disk size.`,
	RunE:  runTables,
}

func init() {
	tablesCmd.Flags().StringVar(&tablesSchema, "schema", "", "only list this schema")
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	if dsn == "" {
		return errors.New("--dsn or $DATABASE_URL is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := connection.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	schemas := []string{tablesSchema}
	if tablesSchema == "" {
		if schemas, err = metadata.ListSchemas(ctx, pool); err != nil {
			return err
		}
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("TABLE", "SIZE")
	for _, schema := range schemas {
		tables, err := metadata.ListTables(ctx, pool, schema)
		if err != nil {
			return err
		}
		for _, tbl := range tables {
			t.Row(tbl.QualifiedName(), tbl.Size)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}
