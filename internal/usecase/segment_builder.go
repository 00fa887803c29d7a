package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SegmentBuilder turns a stored segment definition into a parameterized
// Postgres WHERE clause. Field names are checked against an allowlist so a
// definition can never inject SQL.

type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpContains    FilterOperator = "contains"
	OpNotContains FilterOperator = "not_contains"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpIn          FilterOperator = "in"
	OpNotIn       FilterOperator = "not_in"
)

type LogicOperator string

const (
	LogicAnd LogicOperator = "and"
	LogicOr  LogicOperator = "or"
)

type SegmentFilter struct {
	Field    string          `json:"field"`
	Operator FilterOperator  `json:"operator"`
	Value    json.RawMessage `json:"value"`
}

type SegmentDefinition struct {
	Filters []SegmentFilter `json:"filters"`
	Logic   LogicOperator   `json:"logic"`
}

// segmentFields maps definition field names onto contact columns.
var segmentFields = map[string]string{
	"first_name":       "first_name",
	"last_name":        "last_name",
	"email":            "email",
	"status":           "status",
	"engagement_score": "engagement_score",
	"company_id":       "company_id",
	"tags":             "tags",
}

// ParseSegmentDefinition decodes a stored definition.
func ParseSegmentDefinition(raw string) (*SegmentDefinition, error) {
	var def SegmentDefinition
	if err := json.Unmarshal([]byte(raw), &def); err != nil {
		return nil, fmt.Errorf("invalid segment definition: %w", err)
	}
	if def.Logic == "" {
		def.Logic = LogicAnd
	}
	return &def, nil
}

// BuildWhereClause renders the definition as "WHERE ..." with $n
// placeholders starting at startIndex. An empty definition returns an empty
// clause and no arguments.
func BuildWhereClause(def *SegmentDefinition, startIndex int) (string, []any, error) {
	if def == nil || len(def.Filters) == 0 {
		return "", nil, nil
	}

	var conditions []string
	var args []any
	next := startIndex

	for _, f := range def.Filters {
		column, ok := segmentFields[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown segment field %q", f.Field)
		}

		cond, condArgs, err := filterCondition(column, f, next)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		next += len(condArgs)
	}

	connector := " AND "
	if def.Logic == LogicOr {
		connector = " OR "
	}
	return "WHERE " + strings.Join(conditions, connector), args, nil
}

func filterCondition(column string, f SegmentFilter, index int) (string, []any, error) {
	switch f.Operator {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan:
		value, err := scalarValue(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("field %q: %w", f.Field, err)
		}
		op := map[FilterOperator]string{
			OpEquals:      "=",
			OpNotEquals:   "!=",
			OpGreaterThan: ">",
			OpLessThan:    "<",
		}[f.Operator]
		return fmt.Sprintf("%s %s $%d", column, op, index), []any{value}, nil

	case OpContains, OpNotContains:
		var s string
		if err := json.Unmarshal(f.Value, &s); err != nil {
			return "", nil, fmt.Errorf("field %q: contains needs a string value", f.Field)
		}
		// tags is a text[]; everything else matches as a substring.
		if column == "tags" {
			cond := fmt.Sprintf("$%d = ANY(%s)", index, column)
			if f.Operator == OpNotContains {
				cond = "NOT " + cond
			}
			return cond, []any{s}, nil
		}
		cond := fmt.Sprintf("%s ILIKE $%d", column, index)
		if f.Operator == OpNotContains {
			cond = fmt.Sprintf("%s NOT ILIKE $%d", column, index)
		}
		return cond, []any{"%" + s + "%"}, nil

	case OpIn, OpNotIn:
		var values []any
		if err := json.Unmarshal(f.Value, &values); err != nil {
			return "", nil, fmt.Errorf("field %q: in needs an array value", f.Field)
		}
		if len(values) == 0 {
			return "", nil, fmt.Errorf("field %q: in needs at least one value", f.Field)
		}
		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = fmt.Sprintf("$%d", index+i)
		}
		op := "IN"
		if f.Operator == OpNotIn {
			op = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", column, op, strings.Join(placeholders, ", ")), values, nil
	}

	return "", nil, fmt.Errorf("field %q: unknown operator %q", f.Field, f.Operator)
}

func scalarValue(raw json.RawMessage) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	switch value.(type) {
	case string, float64, bool, nil:
		return value, nil
	}
	return nil, fmt.Errorf("value must be a scalar")
}
