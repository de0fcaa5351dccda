package zeries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	DS "github.com/zeries/zeries/internal/DS"
)

func values(rows []Row) []int64 {
	vals := make([]int64, len(rows))
	for i, r := range rows {
		vals[i] = r.Value
	}
	return vals
}

func eqCons(col int, v int64) Constraint {
	return Constraint{Column: col, Op: DS.OpEQ, Value: v}
}

func valCons(op DS.Op, v int64) Constraint {
	return Constraint{Column: colValue, Op: op, Value: v}
}

// TestScanBetween drives the whole plan/filter/enumerate pipeline for a
// bounded congruence walk, both directions.
func TestScanBetween(t *testing.T) {
	table := &Table{step: 1}
	cons := []Constraint{
		eqCons(colStep, -3),
		eqCons(colBase, 10),
		valCons(DS.OpGE, -9),
		valCons(DS.OpLE, 9),
	}

	rows, err := Scan(table, cons, OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []int64{-8, -5, -2, 1, 4, 7}, values(rows))
	for _, r := range rows {
		assert.Equal(t, int64(-3), r.Step)
		assert.Equal(t, int64(10), r.Base)
	}

	rows, err = Scan(table, cons, OrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 4, 1, -2, -5, -8}, values(rows))
}

func TestScanEquality(t *testing.T) {
	table := &Table{step: 1}
	rows, err := Scan(table, []Constraint{valCons(DS.OpEQ, 41)}, OrderNone)
	require.NoError(t, err)
	assert.Equal(t, []int64{41}, values(rows))

	// Equality off the congruence lattice matches nothing.
	rows, err = Scan(table, []Constraint{
		eqCons(colStep, 2), valCons(DS.OpEQ, 41),
	}, OrderNone)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestScanOffsetLimit(t *testing.T) {
	table := &Table{step: 1}
	cons := []Constraint{
		valCons(DS.OpGE, 0),
		valCons(DS.OpLE, 10),
		{Op: DS.OpOffset, Value: int64(2)},
		{Op: DS.OpLimit, Value: int64(2)},
	}
	rows, err := Scan(table, cons, OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, values(rows))

	rows, err = Scan(table, cons, OrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []int64{8, 7}, values(rows))
}

func TestScanLimitZero(t *testing.T) {
	table := &Table{step: 1}
	rows, err := Scan(table, []Constraint{
		valCons(DS.OpGE, 0),
		valCons(DS.OpLE, 10),
		{Op: DS.OpLimit, Value: int64(0)},
	}, OrderAsc)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestScanStepError(t *testing.T) {
	table := &Table{step: 1}
	_, err := Scan(table, []Constraint{eqCons(colStep, 0)}, OrderNone)
	assert.True(t, IsErrorCode(err, ZDB_RANGE))
}

// TestScanHostRecheck: a comparison on a parameter column is not consumable,
// so Scan must re-check it against the materialized rows.
func TestScanHostRecheck(t *testing.T) {
	table := &Table{step: 3}
	bounded := []Constraint{valCons(DS.OpGE, 0), valCons(DS.OpLE, 10)}

	pass := append([]Constraint{{Column: colStep, Op: DS.OpGT, Value: int64(0)}}, bounded...)
	rows, err := Scan(table, pass, OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3, 6, 9}, values(rows))

	fail := append([]Constraint{{Column: colStep, Op: DS.OpGT, Value: int64(5)}}, bounded...)
	rows, err = Scan(table, fail, OrderAsc)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestScanFloatBound(t *testing.T) {
	table := &Table{step: 1}
	rows, err := Scan(table, []Constraint{
		valCons(DS.OpGE, 0),
		{Column: colValue, Op: DS.OpLT, Value: 3.5},
	}, OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3}, values(rows))
}

// TestScanPaginationProperty: offset k + limit n must equal the unpaginated
// enumeration with the first k values skipped and the rest truncated to n.
func TestScanPaginationProperty(t *testing.T) {
	table := &Table{step: 1}
	base := []Constraint{
		eqCons(colStep, 3),
		eqCons(colBase, 1),
		valCons(DS.OpGE, -20),
		valCons(DS.OpLE, 20),
	}
	full, err := Scan(table, base, OrderAsc)
	require.NoError(t, err)
	require.NotEmpty(t, full)

	for k := int64(0); k <= int64(len(full))+1; k++ {
		for n := int64(0); n <= int64(len(full))+1; n++ {
			cons := append(append([]Constraint{}, base...),
				Constraint{Op: DS.OpOffset, Value: k},
				Constraint{Op: DS.OpLimit, Value: n},
			)
			rows, err := Scan(table, cons, OrderAsc)
			require.NoError(t, err)

			want := values(full)
			if k >= int64(len(want)) {
				want = []int64{}
			} else {
				want = want[k:]
			}
			if n < int64(len(want)) {
				want = want[:n]
			}
			assert.Equal(t, want, values(rows), "offset=%d limit=%d", k, n)
		}
	}
}

// TestScanCongruenceProperty sweeps step/base/bound combinations and checks
// the two invariants of every emitted row: membership in the congruence
// class and containment in the bounds, with exhaustiveness against a naive
// enumeration.
func TestScanCongruenceProperty(t *testing.T) {
	table := &Table{step: 1}
	for _, step := range []int64{1, 2, 3, 7, -4} {
		for _, base := range []int64{0, 1, 10, -6} {
			lo, hi := int64(-25), int64(25)
			rows, err := Scan(table, []Constraint{
				eqCons(colStep, step),
				eqCons(colBase, base),
				valCons(DS.OpGE, lo),
				valCons(DS.OpLE, hi),
			}, OrderAsc)
			require.NoError(t, err)

			ustep := step
			if ustep < 0 {
				ustep = -ustep
			}
			var want []int64
			for v := lo; v <= hi; v++ {
				if ((v-base)%ustep+ustep)%ustep == 0 {
					want = append(want, v)
				}
			}
			assert.Equal(t, want, values(rows), "step=%d base=%d", step, base)
		}
	}
}
