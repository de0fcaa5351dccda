package zeries

import (
	"strconv"

	DS "github.com/zeries/zeries/internal/DS"
	IS "github.com/zeries/zeries/internal/IS"
)

func init() {
	IS.RegisterVTabModule("zeries", &Module{})
}

// Module implements DS.VTabModule for the zeries virtual table.
// Usage: SELECT value FROM zeries WHERE value BETWEEN lo AND hi, or
//
//	CREATE VIRTUAL TABLE t USING zeries([step[, base]])
//
// The table enumerates the infinite bidirectional sequence of integers
// congruent to base modulo |step|, restricted by whatever comparison
// constraints the host pushes down on the value column.  There are no
// start/stop declaration parameters; bounds come from the WHERE clause.
// The step and base hidden columns may be overridden per query with
// equality constraints.
type Module struct{}

func (m *Module) Create(args []string) (DS.VTab, error) {
	t, err := parseModuleArgs(args)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (m *Module) Connect(args []string) (DS.VTab, error) {
	t, err := parseModuleArgs(args)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseModuleArgs(args []string) (*Table, error) {
	t := &Table{step: 1, base: 0}
	if len(args) > 2 {
		return nil, Errorf(ZDB_MISUSE, "zeries: at most 2 arguments (step, base), got %d", len(args))
	}
	if len(args) >= 1 {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, Errorf(ZDB_MISMATCH, "zeries: invalid step %q", args[0])
		}
		if v == 0 {
			return nil, Errorf(ZDB_RANGE, "zeries: step cannot be zero")
		}
		t.step = v
	}
	if len(args) >= 2 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, Errorf(ZDB_MISMATCH, "zeries: invalid base %q", args[1])
		}
		t.base = v
	}
	return t, nil
}

// Column indexes of the zeries schema.  Column -1 addresses the rowid,
// which aliases the value column.
const (
	colValue = iota
	colStep
	colBase

	numCols

	colRowID = -1
)

// Constraint consumption slots.  The exact-match slots accept only = / IS;
// the value slots additionally accept the order comparisons.  Each consumed
// constraint is recorded in the plan token string as the letter 'a'+slot.
const (
	slotOffset = iota
	slotLimit
	slotStep
	slotBase

	numExactSlots

	slotEQ = iota - 1 // shares the value 4 with numExactSlots
	slotLT
	slotLE
	slotGE
	slotGT
)

// flagDesc in IdxNum requests descending enumeration.
const flagDesc = 0x01

var exactNames = [numExactSlots]string{"offset", "limit", "step", "base"}

// Table is one zeries virtual table.  step and base are the declaration-time
// defaults; per-query constraints on the hidden columns override them.
type Table struct {
	step, base int64
}

// BestIndex decides which of the offered constraints the table consumes.
// For every usable constraint it can serve, it claims the constraint's value
// as a Filter argument, marks it omitted from host re-checking, and appends
// one slot letter to the plan token string.  A requested order on the value
// column (or rowid) is consumed and its direction recorded in IdxNum.
func (t *Table) BestIndex(info *DS.IndexInfo) error {
	var tokens []byte
	var flags uint
	argIx := 0
	idxNum := 0

	for ix := range info.Constraints {
		constraint := &info.Constraints[ix]
		if !constraint.Usable {
			continue
		}
		slot := -1
		switch constraint.Op {
		case DS.OpEQ, DS.OpIS:
			switch constraint.Column {
			case colRowID, colValue:
				slot = slotEQ
			case colStep:
				slot = slotStep
			case colBase:
				slot = slotBase
			}

		case DS.OpGE:
			switch constraint.Column {
			case colRowID, colValue:
				slot = slotGE
			}

		case DS.OpGT:
			switch constraint.Column {
			case colRowID, colValue:
				slot = slotGT
			}

		case DS.OpLE:
			switch constraint.Column {
			case colRowID, colValue:
				slot = slotLE
			}

		case DS.OpLT:
			switch constraint.Column {
			case colRowID, colValue:
				slot = slotLT
			}

		case DS.OpLimit:
			slot = slotLimit

		case DS.OpOffset:
			slot = slotOffset
		}
		if slot >= 0 {
			argIx++
			info.Usage[ix] = DS.ConstraintUsage{ArgvIndex: argIx, Omit: true}
			tokens = append(tokens, 'a'+byte(slot))
			flags |= 1 << uint(slot)
		}
	}

	// A single order term on the value column (or rowid) is exactly the
	// enumeration order; anything longer must be sorted by the host.
	if len(info.OrderBy) == 1 {
		if order := info.OrderBy[0]; order.Column == colValue || order.Column == colRowID {
			info.OrderByConsumed = true
			if order.Desc {
				idxNum |= flagDesc
			}
		}
	}

	// Advisory only: a full scan is "the whole 64-bit line", each bound
	// side halves it, an equality pins a single row.
	cost := 18446744073709551616.0
	if flags&(1<<slotLT|1<<slotLE) != 0 {
		cost *= 0.5
	}
	if flags&(1<<slotGE|1<<slotGT) != 0 {
		cost *= 0.5
	}
	if flags&(1<<slotEQ) != 0 {
		cost = 1.0
	}
	info.EstimatedCost = cost

	info.IdxNum = idxNum
	info.IdxStr = string(tokens)
	return nil
}

func (t *Table) Open() (DS.VTabCursor, error) {
	return &Cursor{table: t, eof: true}, nil
}

func (t *Table) Columns() []string { return []string{"value", "step", "base"} }

// HiddenColumns marks step and base as hidden parameter columns.
func (t *Table) HiddenColumns() []bool { return []bool{false, true, true} }

func (t *Table) Disconnect() error { return nil }

func (t *Table) Destroy() error { return nil }
