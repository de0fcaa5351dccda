package instr

import (
	"math"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/zeries/zeries/ext"
)

func init() {
	ext.Register("instr", &InstrExtension{})
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeUTF16 transcodes s to UTF-16LE bytes for searching UTF-16 haystacks.
func EncodeUTF16(s string) ([]byte, error) {
	return utf16le.NewEncoder().Bytes([]byte(s))
}

// InstrExtension exposes INSTR and RINSTR through the extension registry.
type InstrExtension struct{}

func (e *InstrExtension) Name() string        { return "instr" }
func (e *InstrExtension) Description() string { return "Substring search extension" }

func (e *InstrExtension) Functions() []string {
	return []string{"INSTR", "RINSTR"}
}

func (e *InstrExtension) Close() error { return nil }

// CallFunc evaluates INSTR(haystack, needle[, start]) or RINSTR(...).
// Dispatch follows the argument types: two []byte values search raw bytes,
// two strings search UTF-8 text, and a []byte haystack with a string needle
// treats the haystack as UTF-16LE and transcodes the needle to match.
// NULL arguments propagate; unusable types and malformed text yield NULL.
func (e *InstrExtension) CallFunc(name string, args []interface{}) interface{} {
	if len(args) < 2 {
		return nil
	}
	if args[0] == nil || args[1] == nil {
		return nil
	}
	reverse := strings.EqualFold(name, "RINSTR")
	start := int64(1)
	if reverse {
		start = math.MaxInt64
	}
	if len(args) >= 3 {
		s, ok := toInt64(args[2])
		if !ok {
			return nil
		}
		start = s
	}

	switch hay := args[0].(type) {
	case []byte:
		switch nd := args[1].(type) {
		case []byte:
			if reverse {
				return RBytes(hay, nd, start)
			}
			return Bytes(hay, nd, start)
		case string:
			enc, err := EncodeUTF16(nd)
			if err != nil {
				return nil
			}
			var pos int64
			if reverse {
				pos, err = RUTF16(hay, enc, start)
			} else {
				pos, err = UTF16(hay, enc, start)
			}
			if err != nil {
				return nil
			}
			return pos
		}
	case string:
		if nd, ok := args[1].(string); ok {
			var pos int64
			var err error
			if reverse {
				pos, err = RText(hay, nd, start)
			} else {
				pos, err = Text(hay, nd, start)
			}
			if err != nil {
				return nil
			}
			return pos
		}
	}
	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	}
	return 0, false
}
