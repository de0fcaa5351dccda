package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zeries/zeries/pkg/zeries"
)

// formatRows writes rows as a right-aligned table with a header line.
// Column widths grow to fit the widest cell so output is deterministic
// for a given result set.
func formatRows(w io.Writer, rows []zeries.Row) error {
	headers := [3]string{"value", "step", "base"}
	widths := [3]int{len(headers[0]), len(headers[1]), len(headers[2])}
	cells := make([][3]string, len(rows))
	for i, r := range rows {
		cells[i] = [3]string{
			strconv.FormatInt(r.Value, 10),
			strconv.FormatInt(r.Step, 10),
			strconv.FormatInt(r.Base, 10),
		}
		for c := 0; c < 3; c++ {
			if len(cells[i][c]) > widths[c] {
				widths[c] = len(cells[i][c])
			}
		}
	}
	if _, err := fmt.Fprintf(w, "%*s  %*s  %*s\n",
		widths[0], headers[0], widths[1], headers[1], widths[2], headers[2]); err != nil {
		return err
	}
	for _, row := range cells {
		if _, err := fmt.Fprintf(w, "%*s  %*s  %*s\n",
			widths[0], row[0], widths[1], row[1], widths[2], row[2]); err != nil {
			return err
		}
	}
	return nil
}
