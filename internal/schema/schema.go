package schema

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaBuilder provides in-memory schema simulation. Migrations describe
// their tables against it so the schema can be printed without a database.
type SchemaBuilder struct {
	Schema *SchemaState
}

// SchemaState represents the simulated database schema
type SchemaState struct {
	Tables map[string]*Table
}

type Table struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name          string
	Type          string
	Null          bool
	PK            bool
	AutoIncrement bool
}

// TableBuilder provides fluent API for building tables
type TableBuilder struct {
	table *Table
}

func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		Schema: &SchemaState{
			Tables: make(map[string]*Table),
		},
	}
}

// CreateTable creates a table, replacing any table with the same name
func (b *SchemaBuilder) CreateTable(name string) *TableBuilder {
	table := &Table{Name: name}
	b.Schema.Tables[name] = table
	return &TableBuilder{table: table}
}

func (b *SchemaBuilder) DropTable(name string) {
	delete(b.Schema.Tables, name)
}

func (b *SchemaBuilder) TableExists(name string) bool {
	_, exists := b.Schema.Tables[name]
	return exists
}

func (b *SchemaBuilder) GetTable(name string) (*Table, bool) {
	table, exists := b.Schema.Tables[name]
	return table, exists
}

// Column adds a NOT NULL column
func (t *TableBuilder) Column(name, colType string) *TableBuilder {
	t.table.Columns = append(t.table.Columns, &Column{Name: name, Type: colType})
	return t
}

// PrimaryKey adds a NOT NULL primary key column
func (t *TableBuilder) PrimaryKey(name, colType string, autoIncrement bool) *TableBuilder {
	t.table.Columns = append(t.table.Columns, &Column{
		Name:          name,
		Type:          colType,
		PK:            true,
		AutoIncrement: autoIncrement,
	})
	return t
}

// Nullable marks the most recently added column as NULL
func (t *TableBuilder) Nullable() *TableBuilder {
	if n := len(t.table.Columns); n > 0 {
		t.table.Columns[n-1].Null = true
	}
	return t
}

// Column returns a column by name
func (t *Table) Column(name string) (*Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return nil, false
}

// String renders tables in name order and columns in declaration order
func (s *SchemaState) String() string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		table := s.Tables[name]
		sb.WriteString(fmt.Sprintf("Table: %s\n", name))
		for _, col := range table.Columns {
			attrs := []string{}
			if col.PK {
				attrs = append(attrs, "PRIMARY KEY")
			}
			if col.AutoIncrement {
				attrs = append(attrs, "AUTOINCREMENT")
			}
			if col.Null {
				attrs = append(attrs, "NULL")
			} else {
				attrs = append(attrs, "NOT NULL")
			}
			sb.WriteString(fmt.Sprintf("  Column: %s %s [%s]\n", col.Name, col.Type, strings.Join(attrs, ", ")))
		}
	}
	return sb.String()
}
