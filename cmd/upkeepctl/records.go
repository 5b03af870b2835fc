package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
	"upkeep-server/internal/rest"
)

func newEntitiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the record types the server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			entities, err := opts.client().Entities(ctx)
			if err != nil {
				return err
			}

			view := table.View{Headers: []table.Header{{ID: "name", Title: "Entity"}, {ID: "title", Title: "Title"}, {ID: "fields", Title: "Fields"}}}
			for _, e := range entities {
				view.Rows = append(view.Rows, textRow(e.Name, e.Name, e.DisplayNamePlural, strconv.Itoa(len(e.Fields))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.RenderText(view))
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var (
		query  rest.TableQuery
		filter []string
	)

	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "Print one page of an entity table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equals, err := parseAssignments(filter)
			if err != nil {
				return err
			}
			query.Equals = make(map[string]string, len(equals))
			for k, v := range equals {
				query.Equals[k] = fmt.Sprint(v)
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			view, page, err := opts.client().Table(ctx, args[0], query)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.RenderText(view))
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(
				fmt.Sprintf("page %d of %d, %d records", page.Page, max(page.TotalPages, 1), page.Total)))
			return nil
		},
	}
	cmd.Flags().IntVar(&query.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&query.Limit, "limit", 20, "rows per page")
	cmd.Flags().StringVarP(&query.Search, "query", "q", "", "free text search")
	cmd.Flags().StringArrayVar(&filter, "where", nil, "exact match filter, field=value")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity> <id>",
		Short: "Print every value of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			record, err := opts.client().Get(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecord(record))
			return nil
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "create <entity>",
		Short: "Create a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			record, err := opts.client().Create(ctx, args[0], values)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "created %s %s", args[0], record.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value, field=value")
	return cmd
}

// newUpdateCmd merges the given assignments over the stored values, since
// the server replaces every field value on update.
func newUpdateCmd(opts *options) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <entity> <id>",
		Short: "Change fields of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			client := opts.client()
			current, err := client.Get(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			values := current.Values
			if values == nil {
				values = map[string]any{}
			}
			for k, v := range changes {
				values[k] = v
			}

			if _, err := client.Update(ctx, args[0], args[1], values); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "updated %s %s", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value, field=value")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			if err := opts.client().Delete(ctx, args[0], args[1]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "deleted %s %s", args[0], args[1])
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <entity>",
		Short: "Write the entity table as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			data, err := opts.client().Export(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// parseAssignments reads field=value pairs. Values that parse as JSON
// numbers or booleans keep that type; everything else is a string.
func parseAssignments(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		field, raw, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", pair)
		}

		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			switch decoded.(type) {
			case float64, bool:
				values[field] = decoded
				continue
			}
		}
		values[field] = raw
	}
	return values, nil
}

func textRow(id string, texts ...string) table.Row {
	row := table.Row{RecordID: domain.ID(id), Cells: make([]table.Cell, len(texts))}
	for i, t := range texts {
		row.Cells[i] = table.Cell{Text: t}
	}
	return row
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
