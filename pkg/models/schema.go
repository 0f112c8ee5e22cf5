package models

// ColumnSchema describes one column of an introspected table. The field
// values follow MySQL's information_schema conventions: IsNullable is
// "YES"/"NO" and ColumnKey is "PRI"/"MUL"/"UNI"/"".
type ColumnSchema struct {
	ColumnName    string  `json:"columnName"`
	DataType      string  `json:"dataType"`
	IsNullable    string  `json:"isNullable"`
	ColumnKey     string  `json:"columnKey"`
	ColumnDefault *string `json:"columnDefault"`
	ColumnComment string  `json:"columnComment"`
	Extra         string  `json:"extra"`
}

// ForeignKeySchema describes one outgoing foreign key edge of a table.
type ForeignKeySchema struct {
	ColumnName       string `json:"columnName"`
	ReferencedTable  string `json:"referencedTable"`
	ReferencedColumn string `json:"referencedColumn"`
}

// TableSchema is a read-only snapshot of one table's structure, supplied by
// the caller per request. The engine never introspects the database itself.
type TableSchema struct {
	TableName    string             `json:"tableName"`
	TableComment string             `json:"tableComment"`
	Columns      []ColumnSchema     `json:"columns"`
	ForeignKeys  []ForeignKeySchema `json:"foreignKeys"`
	PrimaryKeys  []string           `json:"primaryKeys"`
}
