package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeries/zeries/internal/DS"
	"github.com/zeries/zeries/pkg/zeries"
)

// Request is a YAML scan request:
//
//	step: 3
//	base: 10
//	where:
//	  - {op: ">=", value: -9}
//	  - {op: "<=", value: 9}
//	offset: 1
//	limit: 4
//	order: desc
type Request struct {
	Step   *int64      `yaml:"step"`
	Base   *int64      `yaml:"base"`
	Where  []Predicate `yaml:"where"`
	Offset *int64      `yaml:"offset"`
	Limit  *int64      `yaml:"limit"`
	Order  string      `yaml:"order"`
}

// Predicate is one comparison against the value column.
type Predicate struct {
	Op    string      `yaml:"op"`
	Value interface{} `yaml:"value"`
}

func loadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}
	return &req, nil
}

var predicateOps = map[string]DS.Op{
	"=":  DS.OpEQ,
	"==": DS.OpEQ,
	">":  DS.OpGT,
	">=": DS.OpGE,
	"<":  DS.OpLT,
	"<=": DS.OpLE,
}

// constraints converts the request into Scan inputs.  YAML integers decode
// as int; they are widened to int64 so the planner sees a lossless value.
func (r *Request) constraints() ([]zeries.Constraint, zeries.Order, error) {
	var cons []zeries.Constraint
	if r.Step != nil {
		cons = append(cons, zeries.Constraint{Column: 1, Op: DS.OpEQ, Value: *r.Step})
	}
	if r.Base != nil {
		cons = append(cons, zeries.Constraint{Column: 2, Op: DS.OpEQ, Value: *r.Base})
	}
	for _, p := range r.Where {
		op, ok := predicateOps[p.Op]
		if !ok {
			return nil, zeries.OrderNone, fmt.Errorf("unknown predicate operator %q", p.Op)
		}
		cons = append(cons, zeries.Constraint{Column: 0, Op: op, Value: widenInt(p.Value)})
	}
	if r.Offset != nil {
		cons = append(cons, zeries.Constraint{Op: DS.OpOffset, Value: *r.Offset})
	}
	if r.Limit != nil {
		cons = append(cons, zeries.Constraint{Op: DS.OpLimit, Value: *r.Limit})
	}
	switch r.Order {
	case "", "none":
		return cons, zeries.OrderNone, nil
	case "asc":
		return cons, zeries.OrderAsc, nil
	case "desc":
		return cons, zeries.OrderDesc, nil
	}
	return nil, zeries.OrderNone, fmt.Errorf("unknown order %q", r.Order)
}

func widenInt(v interface{}) interface{} {
	if n, ok := v.(int); ok {
		return int64(n)
	}
	return v
}
