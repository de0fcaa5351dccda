package DS

// VTabCursor defines the cursor interface for iterating over virtual table rows.
type VTabCursor interface {
	Filter(idxNum int, idxStr string, args []interface{}) error
	Next() error
	Column(col int) (interface{}, error)
	RowID() (int64, error)
	Eof() bool
	Close() error
}

// VTab represents a virtual table instance.
type VTab interface {
	BestIndex(info *IndexInfo) error
	Open() (VTabCursor, error)
	Columns() []string
	HiddenColumns() []bool
	Disconnect() error
	Destroy() error
}

// VTabModule is the factory for creating/connecting to virtual tables.
type VTabModule interface {
	Create(args []string) (VTab, error)
	Connect(args []string) (VTab, error)
}

// Op identifies a constraint operator offered to BestIndex.
// Values follow the SQLite index-constraint numbering.
type Op byte

const (
	OpEQ     Op = 2
	OpGT     Op = 4
	OpLE     Op = 8
	OpLT     Op = 16
	OpGE     Op = 32
	OpIS     Op = 72
	OpLimit  Op = 73
	OpOffset Op = 74
)

// String returns the SQL spelling of the operator.
func (op Op) String() string {
	switch op {
	case OpEQ:
		return "="
	case OpGT:
		return ">"
	case OpLE:
		return "<="
	case OpLT:
		return "<"
	case OpGE:
		return ">="
	case OpIS:
		return "IS"
	case OpLimit:
		return "LIMIT"
	case OpOffset:
		return "OFFSET"
	}
	return "?"
}

// IndexInfo holds query plan information passed to BestIndex.
// Constraints and OrderBy are inputs; the remaining fields are outputs
// the virtual table fills in to describe the plan it chose.
type IndexInfo struct {
	Constraints []IndexConstraint
	OrderBy     []IndexOrderBy

	// Usage is allocated by the caller with one entry per constraint.
	Usage []ConstraintUsage

	IdxNum          int
	IdxStr          string
	OrderByConsumed bool
	EstimatedCost   float64
	EstimatedRows   int64
}

// IndexConstraint describes a WHERE constraint offered to the table.
// Column -1 addresses the rowid.
type IndexConstraint struct {
	Column int
	Op     Op
	Usable bool
}

// ConstraintUsage records how the table consumes one constraint.
// ArgvIndex > 0 requests the constraint's value as Filter argument
// number ArgvIndex; Omit tells the host it need not re-check it.
type ConstraintUsage struct {
	ArgvIndex int
	Omit      bool
}

// IndexOrderBy describes an ORDER BY term.
type IndexOrderBy struct {
	Column int
	Desc   bool
}

// NewIndexInfo builds an IndexInfo with Usage sized to the constraints.
func NewIndexInfo(constraints []IndexConstraint, orderBy []IndexOrderBy) *IndexInfo {
	return &IndexInfo{
		Constraints: constraints,
		OrderBy:     orderBy,
		Usage:       make([]ConstraintUsage, len(constraints)),
	}
}
