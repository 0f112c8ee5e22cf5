// Package schemactx renders a relational schema description into the compact
// textual form consumed by SQL generation prompts.
package schemactx

import (
	"fmt"
	"strings"

	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// NoTablesSelected is returned when the selection is empty, so prompt
// assembly always has a visible section instead of a silently missing one.
const NoTablesSelected = "No tables selected for context."

// Generate renders the selected tables in schema order. Selection order is
// ignored. Each table gets a column block and, when it declares foreign
// keys, a per-table Foreign Keys block. A global Table Relationships section
// lists only edges whose referenced table is also selected, and is omitted
// when no such edge exists.
func Generate(schema []models.TableSchema, selectedTables []string) string {
	if len(selectedTables) == 0 {
		return NoTablesSelected
	}

	selected := make(map[string]bool, len(selectedTables))
	for _, name := range selectedTables {
		selected[name] = true
	}

	var b strings.Builder
	b.WriteString("Database Schema Context:\n\n")

	for _, table := range schema {
		if !selected[table.TableName] {
			continue
		}

		b.WriteString("Table: " + table.TableName)
		if table.TableComment != "" {
			b.WriteString(" (" + table.TableComment + ")")
		}
		b.WriteString("\n")

		b.WriteString("Columns:\n")
		for _, col := range table.Columns {
			b.WriteString("  - " + col.ColumnName + ": " + col.DataType)

			switch col.ColumnKey {
			case "PRI":
				b.WriteString(" (Primary Key)")
			case "MUL":
				b.WriteString(" (Foreign Key)")
			}

			if col.IsNullable == "NO" {
				b.WriteString(" NOT NULL")
			}

			if col.ColumnDefault != nil {
				b.WriteString(" DEFAULT " + *col.ColumnDefault)
			}

			if col.ColumnComment != "" {
				b.WriteString(" - " + col.ColumnComment)
			}

			b.WriteString("\n")
		}

		if len(table.ForeignKeys) > 0 {
			b.WriteString("Foreign Keys:\n")
			for _, fk := range table.ForeignKeys {
				b.WriteString(fmt.Sprintf("  - %s → %s.%s\n", fk.ColumnName, fk.ReferencedTable, fk.ReferencedColumn))
			}
		}

		b.WriteString("\n")
	}

	var relationships []string
	for _, table := range schema {
		if !selected[table.TableName] {
			continue
		}
		for _, fk := range table.ForeignKeys {
			if selected[fk.ReferencedTable] {
				relationships = append(relationships,
					fmt.Sprintf("- %s.%s → %s.%s\n", table.TableName, fk.ColumnName, fk.ReferencedTable, fk.ReferencedColumn))
			}
		}
	}

	if len(relationships) > 0 {
		b.WriteString("Table Relationships:\n")
		for _, rel := range relationships {
			b.WriteString(rel)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Summary reports overall schema shape independent of any selection.
func Summary(schema []models.TableSchema) string {
	tableCount := len(schema)
	totalColumns := 0
	totalRelationships := 0
	for _, table := range schema {
		totalColumns += len(table.Columns)
		totalRelationships += len(table.ForeignKeys)
	}

	return fmt.Sprintf("Database contains %d tables with %d total columns and %d foreign key relationships.",
		tableCount, totalColumns, totalRelationships)
}
