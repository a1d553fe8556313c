package query

import "fmt"

// Condition is one WHERE predicate rendered with Spanner named parameters
// (@p0, @p1, ...).
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex is the first
	// free parameter number.
	SQL(paramIndex int) (string, map[string]interface{})
}

type cmpCondition struct {
	field string
	op    string
	value interface{}
}

// Lt creates a less-than condition: Lt("updated_at", cutoff) -> "updated_at < @p0".
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	param := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, param), map[string]interface{}{param: c.value}
}
