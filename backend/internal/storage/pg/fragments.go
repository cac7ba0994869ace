package pg

import (
	"fmt"
	"strings"
)

// Cond is one self-contained predicate with ? placeholders for its own args.
// Conditions are combined with AND, so a set of them is order-independent and
// each narrowing rule (visibility, criteria, dimensions, exclusion) can be
// built and tested on its own.
type Cond struct {
	expr string
	args []any
}

func NewCond(expr string, args ...any) Cond {
	return Cond{expr: expr, args: args}
}

// CondSet is an AND-combined set of conditions.
type CondSet []Cond

// Where renders the set as a WHERE clause with $n placeholders starting at
// `start`, plus the flattened argument list. An empty set renders as "".
func (cs CondSet) Where(start int) (string, []any) {
	if len(cs) == 0 {
		return "", nil
	}

	var exprs []string
	var args []any
	n := start
	for _, c := range cs {
		expr := c.expr
		for range c.args {
			expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", n), 1)
			n++
		}
		exprs = append(exprs, expr)
		args = append(args, c.args...)
	}
	return "WHERE " + strings.Join(exprs, " AND "), args
}

// ArgCount reports how many placeholders the set consumes.
func (cs CondSet) ArgCount() int {
	n := 0
	for _, c := range cs {
		n += len(c.args)
	}
	return n
}
