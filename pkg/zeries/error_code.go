package zeries

import "fmt"

// ErrorCode represents a zeries error code following the SQLite error code
// convention.
type ErrorCode int32

const (
	ZDB_OK       ErrorCode = 0
	ZDB_ERROR    ErrorCode = 1
	ZDB_INTERNAL ErrorCode = 2
	ZDB_NOTFOUND ErrorCode = 12
	ZDB_MISMATCH ErrorCode = 20
	ZDB_MISUSE   ErrorCode = 21
	ZDB_FORMAT   ErrorCode = 24
	ZDB_RANGE    ErrorCode = 25
)

var codeNames = map[ErrorCode]string{
	ZDB_OK:       "ZDB_OK",
	ZDB_ERROR:    "ZDB_ERROR",
	ZDB_INTERNAL: "ZDB_INTERNAL",
	ZDB_NOTFOUND: "ZDB_NOTFOUND",
	ZDB_MISMATCH: "ZDB_MISMATCH",
	ZDB_MISUSE:   "ZDB_MISUSE",
	ZDB_FORMAT:   "ZDB_FORMAT",
	ZDB_RANGE:    "ZDB_RANGE",
}

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ZDB_UNKNOWN(%d)", int32(c))
}
