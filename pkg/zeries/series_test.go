package zeries

import (
	"testing"

	IS "github.com/zeries/zeries/internal/IS"
)

// TestModuleRegistered verifies the init-time registration under the module
// registry, which is how hosts discover the table.
func TestModuleRegistered(t *testing.T) {
	mod, ok := IS.GetVTabModule("zeries")
	if !ok {
		t.Fatal("zeries module not registered")
	}
	if _, err := mod.Connect(nil); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
}

func TestModuleArgs(t *testing.T) {
	m := &Module{}

	vt, err := m.Create(nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	table := vt.(*Table)
	if table.step != 1 || table.base != 0 {
		t.Errorf("defaults = (%d, %d), want (1, 0)", table.step, table.base)
	}

	vt, err = m.Create([]string{"-5", "7"})
	if err != nil {
		t.Fatalf("Create(-5, 7) failed: %v", err)
	}
	table = vt.(*Table)
	if table.step != -5 || table.base != 7 {
		t.Errorf("parsed = (%d, %d), want (-5, 7)", table.step, table.base)
	}

	if _, err = m.Create([]string{"0"}); !IsErrorCode(err, ZDB_RANGE) {
		t.Errorf("Create(0) error = %v, want ZDB_RANGE", err)
	}
	if _, err = m.Create([]string{"x"}); !IsErrorCode(err, ZDB_MISMATCH) {
		t.Errorf("Create(x) error = %v, want ZDB_MISMATCH", err)
	}
	if _, err = m.Create([]string{"1", "2", "3"}); !IsErrorCode(err, ZDB_MISUSE) {
		t.Errorf("Create(1,2,3) error = %v, want ZDB_MISUSE", err)
	}
}

func TestTableSchema(t *testing.T) {
	table := &Table{step: 1}
	cols := table.Columns()
	want := []string{"value", "step", "base"}
	if len(cols) != len(want) {
		t.Fatalf("Columns() = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, cols[i], want[i])
		}
	}
	hidden := table.HiddenColumns()
	if hidden[colValue] || !hidden[colStep] || !hidden[colBase] {
		t.Errorf("HiddenColumns() = %v, want value visible and parameters hidden", hidden)
	}
}

// TestCursorLifecycle: a cursor opens exhausted, Filter seeds it, and the
// rowid always mirrors the value column.
func TestCursorLifecycle(t *testing.T) {
	table := &Table{step: 1}
	cur, err := table.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer cur.Close()
	if !cur.Eof() {
		t.Error("fresh cursor should be exhausted")
	}

	if err := cur.Filter(0, "e", []interface{}{int64(42)}); err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if cur.Eof() {
		t.Fatal("cursor exhausted after equality filter")
	}
	v, err := cur.Column(colValue)
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if v.(int64) != 42 {
		t.Errorf("value = %v, want 42", v)
	}
	rowid, err := cur.RowID()
	if err != nil {
		t.Fatalf("RowID failed: %v", err)
	}
	if rowid != 42 {
		t.Errorf("rowid = %d, want 42", rowid)
	}
	if err := cur.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !cur.Eof() {
		t.Error("single-row cursor should be exhausted after Next")
	}
}

func TestCursorFilterErrorExhausts(t *testing.T) {
	table := &Table{step: 1}
	cur, _ := table.Open()
	err := cur.Filter(0, "c", []interface{}{int64(0)})
	if !IsErrorCode(err, ZDB_RANGE) {
		t.Fatalf("Filter error = %v, want ZDB_RANGE", err)
	}
	if !cur.Eof() {
		t.Error("cursor must be exhausted after a filter error")
	}
}

func TestCursorColumnOutOfRange(t *testing.T) {
	table := &Table{step: 1}
	cur, _ := table.Open()
	if _, err := cur.Column(numCols); !IsErrorCode(err, ZDB_INTERNAL) {
		t.Errorf("Column(%d) error = %v, want ZDB_INTERNAL", numCols, err)
	}
}
