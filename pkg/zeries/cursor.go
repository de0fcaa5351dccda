package zeries

// Cursor enumerates one resolved range.  It opens exhausted; Filter seeds it
// from a freshly resolved range and every Next advances by the signed step
// until the stop value has been emitted.  A cursor is never shared between
// enumerations; restarting means another Filter call.
type Cursor struct {
	table *Table
	cols  [numCols]int64
	step  int64
	stop  int64
	eof   bool
}

// Filter resolves the constraint conjunction described by the plan token
// string and positions the cursor on the first value.  An infeasible
// conjunction leaves the cursor exhausted without error; fatal configuration
// errors (bad parameter type, step out of range) exhaust the cursor and
// propagate.
func (c *Cursor) Filter(idxNum int, idxStr string, args []interface{}) error {
	rr, err := resolveRange(c.table.step, c.table.base, idxNum, idxStr, args)
	if err != nil {
		c.eof = true
		return err
	}
	if rr.empty {
		c.eof = true
		return nil
	}
	c.cols[colValue] = rr.start
	c.cols[colStep] = rr.userStep
	c.cols[colBase] = rr.userBase
	c.step = rr.step
	c.stop = rr.stop
	c.eof = false
	return nil
}

// Next advances to the following value.  The resolved range already respects
// the 64-bit bounds, so the increment cannot overflow: stop is reached by
// equality before any step could leave the range.
func (c *Cursor) Next() error {
	if !c.eof {
		if c.cols[colValue] == c.stop {
			c.eof = true
		} else {
			c.cols[colValue] += c.step
		}
	}
	return nil
}

// Column returns the current row's value, effective step, or effective base.
// The rowid aliases the value column.
func (c *Cursor) Column(col int) (interface{}, error) {
	if col == colRowID {
		col = colValue
	}
	if col < 0 || col >= numCols {
		return nil, Errorf(ZDB_INTERNAL, "zeries: column %d out of range", col)
	}
	return c.cols[col], nil
}

// RowID returns the value itself; each value appears at most once.
func (c *Cursor) RowID() (int64, error) {
	return c.cols[colValue], nil
}

func (c *Cursor) Eof() bool { return c.eof }

func (c *Cursor) Close() error { return nil }
