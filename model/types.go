package model

// Role classifies what part a node type plays in table structure. Table
// machinery dispatches on roles exhaustively instead of inspecting type
// names.
type Role int

const (
	RoleNone Role = iota
	RoleTable
	RoleRow
	RoleCell
	RoleHeaderCell
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleTable:
		return "table"
	case RoleRow:
		return "row"
	case RoleCell:
		return "cell"
	case RoleHeaderCell:
		return "header_cell"
	}
	return "<unknown role>"
}

// NodeType describes a kind of document node. Types are compared by
// pointer; every node of a given kind shares the one descriptor below.
type NodeType struct {
	Name   string
	Role   Role
	Inline bool
}

// IsCell reports whether the type occupies a grid slot.
func (t *NodeType) IsCell() bool {
	return t.Role == RoleCell || t.Role == RoleHeaderCell
}

func (t *NodeType) IsText() bool { return t == Text }

func (t *NodeType) String() string { return t.Name }

var (
	Doc        = &NodeType{Name: "doc"}
	Paragraph  = &NodeType{Name: "paragraph"}
	Text       = &NodeType{Name: "text", Inline: true}
	Table      = &NodeType{Name: "table", Role: RoleTable}
	Row        = &NodeType{Name: "table_row", Role: RoleRow}
	Cell       = &NodeType{Name: "table_cell", Role: RoleCell}
	HeaderCell = &NodeType{Name: "table_header", Role: RoleHeaderCell}
)

var typesByName = map[string]*NodeType{
	Doc.Name:        Doc,
	Paragraph.Name:  Paragraph,
	Text.Name:       Text,
	Table.Name:      Table,
	Row.Name:        Row,
	Cell.Name:       Cell,
	HeaderCell.Name: HeaderCell,
}

// TypeByName resolves a serialized type name to its descriptor.
func TypeByName(name string) (*NodeType, bool) {
	t, ok := typesByName[name]
	return t, ok
}

func Types() []*NodeType {
	return []*NodeType{Doc, Paragraph, Text, Table, Row, Cell, HeaderCell}
}
