package ext

// Extension is the interface all zeries extensions must implement.
// Extensions contribute scalar functions callable by a hosting engine.
type Extension interface {
	// Name returns the unique extension identifier (e.g., "instr").
	Name() string
	// Description returns a human-readable description of the extension.
	Description() string
	// Functions returns the list of function names this extension handles.
	Functions() []string
	// CallFunc evaluates a function by name with the given argument values.
	// args contains evaluated Go values (int64, float64, string, []byte, nil).
	CallFunc(name string, args []interface{}) interface{}
	// Close releases any resources held by the extension.
	Close() error
}
