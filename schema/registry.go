// Package schema validates cell attributes against a registry of
// constraint expressions. Each rule is an expr program evaluated with the
// cell's attributes in scope; rules that evaluate to false produce
// violations, which lint surfaces and tests assert on.
package schema

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/prosetree/tables/model"
)

// Rule is one named constraint over a cell's attributes. Expr sees the
// variables colspan (int), rowspan (int), colwidth ([]int or nil) and
// header (bool) and must yield a boolean.
type Rule struct {
	Name    string
	Expr    string
	Message string
}

type compiledRule struct {
	Rule
	prg *vm.Program
}

// Registry holds compiled rules. Safe for concurrent Validate calls.
type Registry struct {
	mu    sync.RWMutex
	rules []*compiledRule
}

func ruleEnv() map[string]any {
	return map[string]any{
		"colspan":  0,
		"rowspan":  0,
		"colwidth": []int(nil),
		"header":   false,
	}
}

// NewRegistry compiles the given rules.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register compiles and adds one rule.
func (r *Registry) Register(rule Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("schema: rule must have a name")
	}
	prg, err := expr.Compile(rule.Expr, expr.Env(ruleEnv()), expr.AsBool())
	if err != nil {
		return fmt.Errorf("schema: compiling rule %q: %w", rule.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, have := range r.rules {
		if have.Name == rule.Name {
			return fmt.Errorf("schema: rule %q already registered", rule.Name)
		}
	}
	r.rules = append(r.rules, &compiledRule{Rule: rule, prg: prg})
	return nil
}

// Violation reports one cell failing one rule. Pos addresses the position
// directly before the cell in the validated document.
type Violation struct {
	Pos     int
	Path    string
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Path, v.Message, v.Rule)
}

// Validate checks every cell in doc against the registry's rules.
func (r *Registry) Validate(doc *model.Node) []Violation {
	r.mu.RLock()
	rules := r.rules
	r.mu.RUnlock()

	var res []Violation
	doc.Descendants(func(node *model.Node, pos int) bool {
		if !node.Type().IsCell() {
			return true
		}
		attrs := node.Attrs()
		env := map[string]any{
			"colspan":  attrs.Colspan,
			"rowspan":  attrs.Rowspan,
			"colwidth": attrs.Colwidth,
			"header":   node.Type().Role == model.RoleHeaderCell,
		}
		for _, rule := range rules {
			out, err := expr.Run(rule.prg, env)
			if err != nil {
				res = append(res, Violation{
					Pos:     pos,
					Path:    fmt.Sprintf("%s@%d", node.Type().Name, pos),
					Rule:    rule.Name,
					Message: fmt.Sprintf("rule error: %v", err),
				})
				continue
			}
			if ok, _ := out.(bool); !ok {
				res = append(res, Violation{
					Pos:     pos,
					Path:    fmt.Sprintf("%s@%d", node.Type().Name, pos),
					Rule:    rule.Name,
					Message: rule.Message,
				})
			}
		}
		return true
	})
	return res
}

// Default returns the stock table constraints.
func Default() *Registry {
	r, err := NewRegistry(
		Rule{
			Name:    "colspan-min",
			Expr:    "colspan >= 1",
			Message: "colspan must be at least 1",
		},
		Rule{
			Name:    "rowspan-min",
			Expr:    "rowspan >= 1",
			Message: "rowspan must be at least 1",
		},
		Rule{
			Name:    "colwidth-len",
			Expr:    "colwidth == nil || len(colwidth) == colspan",
			Message: "colwidth length must equal colspan",
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
