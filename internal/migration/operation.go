package migration

import (
	"fmt"
	"strings"
)

// Operation selects the filename phrasing and the template of a new migration.
type Operation int

const (
	Script Operation = iota
	CreateTable
	AlterTable
	DropTable
	AddColumn
	AlterColumn
	DropColumn
)

var operationNames = [...]string{
	Script:      "script",
	CreateTable: "create-table",
	AlterTable:  "alter-table",
	DropTable:   "drop-table",
	AddColumn:   "add-column",
	AlterColumn: "alter-column",
	DropColumn:  "drop-column",
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range operationNames {
		ops[i] = Operation(i)
	}
	return ops
}

// Names returns the kebab-case names accepted by ParseOperation.
func Names() []string {
	names := make([]string, len(operationNames))
	copy(names, operationNames[:])
	return names
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return fmt.Sprintf("operation(%d)", int(o))
	}
	return operationNames[o]
}

// ParseOperation maps a kebab-case name onto an Operation.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range operationNames {
		if name == s {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q (want one of %s)",
		ErrValidation, s, strings.Join(operationNames[:], ", "))
}

// NeedsColumn reports whether the operation targets a single column.
func (o Operation) NeedsColumn() bool {
	switch o {
	case AddColumn, AlterColumn, DropColumn:
		return true
	}
	return false
}

// Description is the human readable part of the file name.
func (o Operation) Description(name, column string) string {
	switch o {
	case Script:
		return strings.ReplaceAll(name, " ", "_")
	case CreateTable:
		return "create table " + name
	case AlterTable:
		return "alter table " + name
	case DropTable:
		return "drop table " + name
	case AddColumn:
		return fmt.Sprintf("add column %s to %s", column, name)
	case AlterColumn:
		return fmt.Sprintf("alter column %s in %s", column, name)
	case DropColumn:
		return fmt.Sprintf("drop column %s from %s", column, name)
	}
	return name
}

// Template names the boilerplate rendered into the file, or "" for an empty file.
func (o Operation) Template() string {
	switch o {
	case CreateTable:
		return "create_table"
	case AddColumn:
		return "add_column"
	case DropColumn:
		return "drop_column"
	}
	return ""
}
