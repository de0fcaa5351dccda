package zeries

import (
	"sort"

	DS "github.com/zeries/zeries/internal/DS"
	"github.com/zeries/zeries/internal/log"
)

// Constraint is a host-side predicate descriptor with its bound value.
// Column uses the zeries schema indexes (0 value, 1 step, 2 base, -1 rowid);
// OpLimit/OpOffset constraints ignore Column.
type Constraint struct {
	Column int
	Op     DS.Op
	Value  interface{}
}

// Row is one materialized result row: the emitted value plus the effective
// step and base in force for the enumeration.
type Row struct {
	Value int64
	Step  int64
	Base  int64
}

// Order is the requested sort on the value column.
type Order int

const (
	OrderNone Order = iota
	OrderAsc
	OrderDesc
)

// Scan drives one full plan/resolve/enumerate round against a virtual table:
// it negotiates the plan with BestIndex, hands the consumed constraint values
// to Filter in argv order, drains the cursor, re-checks whatever the planner
// left for the host, and applies the requested order if the table could not.
func Scan(vt DS.VTab, cons []Constraint, order Order) ([]Row, error) {
	ics := make([]DS.IndexConstraint, len(cons))
	for i, c := range cons {
		ics[i] = DS.IndexConstraint{Column: c.Column, Op: c.Op, Usable: true}
	}
	var obs []DS.IndexOrderBy
	if order != OrderNone {
		obs = []DS.IndexOrderBy{{Column: colValue, Desc: order == OrderDesc}}
	}
	info := DS.NewIndexInfo(ics, obs)
	if err := vt.BestIndex(info); err != nil {
		return nil, err
	}
	log.Debug("zeries plan: idxNum=%d idxStr=%q cost=%g orderConsumed=%v",
		info.IdxNum, info.IdxStr, info.EstimatedCost, info.OrderByConsumed)

	args := make([]interface{}, len(info.IdxStr))
	var recheck []Constraint
	for i, usage := range info.Usage {
		if usage.ArgvIndex > 0 {
			if usage.ArgvIndex > len(args) {
				return nil, Errorf(ZDB_INTERNAL, "zeries: argv index %d beyond plan arity %d",
					usage.ArgvIndex, len(args))
			}
			args[usage.ArgvIndex-1] = cons[i].Value
		}
		if !usage.Omit {
			recheck = append(recheck, cons[i])
		}
	}

	cursor, err := vt.Open()
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if err := cursor.Filter(info.IdxNum, info.IdxStr, args); err != nil {
		return nil, err
	}

	var rows []Row
	for !cursor.Eof() {
		var row Row
		for col, dst := range []*int64{&row.Value, &row.Step, &row.Base} {
			v, err := cursor.Column(col)
			if err != nil {
				return nil, err
			}
			iv, ok := v.(int64)
			if !ok {
				return nil, Errorf(ZDB_INTERNAL, "zeries: column %d is %T, want int64", col, v)
			}
			*dst = iv
		}
		if rowSatisfies(row, recheck) {
			rows = append(rows, row)
		}
		if err := cursor.Next(); err != nil {
			return nil, err
		}
	}

	if order != OrderNone && !info.OrderByConsumed {
		desc := order == OrderDesc
		sort.Slice(rows, func(i, j int) bool {
			if desc {
				return rows[i].Value > rows[j].Value
			}
			return rows[i].Value < rows[j].Value
		})
	}
	return rows, nil
}

// rowSatisfies applies the constraints the planner declined to consume.
func rowSatisfies(row Row, cons []Constraint) bool {
	for _, c := range cons {
		var lhs int64
		switch c.Column {
		case colValue, colRowID:
			lhs = row.Value
		case colStep:
			lhs = row.Step
		case colBase:
			lhs = row.Base
		default:
			return false
		}
		if !compareOp(lhs, c.Op, c.Value) {
			return false
		}
	}
	return true
}

// compareOp evaluates lhs <op> rhs with the Filter argument value
// conventions (int64, int, float64; anything else never matches).
func compareOp(lhs int64, op DS.Op, rhs interface{}) bool {
	// cmp < 0, 0, > 0 for lhs below, equal to, above rhs.
	var cmp int
	switch x := rhs.(type) {
	case int64:
		cmp = cmpInt64(lhs, x)
	case int:
		cmp = cmpInt64(lhs, int64(x))
	case float64:
		switch {
		case float64(lhs) < x:
			cmp = -1
		case float64(lhs) > x:
			cmp = 1
		}
	default:
		return false
	}
	switch op {
	case DS.OpEQ, DS.OpIS:
		return cmp == 0
	case DS.OpGT:
		return cmp > 0
	case DS.OpGE:
		return cmp >= 0
	case DS.OpLT:
		return cmp < 0
	case DS.OpLE:
		return cmp <= 0
	case DS.OpLimit, DS.OpOffset:
		// Pagination is only meaningful when consumed by the table.
		return true
	}
	return false
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
