package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSegmentDefinitionDefaultsToAnd(t *testing.T) {
	def, err := ParseSegmentDefinition(`{"filters":[{"field":"status","operator":"equals","value":"lead"}]}`)

	assert.NoError(t, err)
	assert.Equal(t, LogicAnd, def.Logic)
	assert.Len(t, def.Filters, 1)
}

func TestParseSegmentDefinitionRejectsGarbage(t *testing.T) {
	_, err := ParseSegmentDefinition(`not json`)
	assert.Error(t, err)
}

func TestBuildWhereClauseEmpty(t *testing.T) {
	where, args, err := BuildWhereClause(nil, 1)

	assert.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereClauseEquals(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpEquals, Value: json.RawMessage(`"lead"`)},
		},
		Logic: LogicAnd,
	}

	where, args, err := BuildWhereClause(def, 1)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE status = $1", where)
	assert.Equal(t, []any{"lead"}, args)
}

func TestBuildWhereClauseMultipleFiltersOr(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpEquals, Value: json.RawMessage(`"customer"`)},
			{Field: "engagement_score", Operator: OpGreaterThan, Value: json.RawMessage(`50`)},
		},
		Logic: LogicOr,
	}

	where, args, err := BuildWhereClause(def, 1)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE status = $1 OR engagement_score > $2", where)
	assert.Equal(t, []any{"customer", float64(50)}, args)
}

func TestBuildWhereClauseTagsContains(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "tags", Operator: OpContains, Value: json.RawMessage(`"vip"`)},
		},
	}

	where, args, err := BuildWhereClause(def, 1)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE $1 = ANY(tags)", where)
	assert.Equal(t, []any{"vip"}, args)
}

func TestBuildWhereClauseTextContainsUsesILike(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "email", Operator: OpContains, Value: json.RawMessage(`"@example.com"`)},
		},
	}

	where, args, err := BuildWhereClause(def, 1)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE email ILIKE $1", where)
	assert.Equal(t, []any{"%@example.com%"}, args)
}

func TestBuildWhereClauseInExpandsPlaceholders(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpIn, Value: json.RawMessage(`["lead","customer"]`)},
			{Field: "engagement_score", Operator: OpLessThan, Value: json.RawMessage(`30`)},
		},
	}

	where, args, err := BuildWhereClause(def, 1)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE status IN ($1, $2) AND engagement_score < $3", where)
	assert.Len(t, args, 3)
}

func TestBuildWhereClauseStartIndexOffset(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpEquals, Value: json.RawMessage(`"lead"`)},
		},
	}

	where, _, err := BuildWhereClause(def, 4)

	assert.NoError(t, err)
	assert.Equal(t, "WHERE status = $4", where)
}

func TestBuildWhereClauseUnknownFieldRejected(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "password", Operator: OpEquals, Value: json.RawMessage(`"x"`)},
		},
	}

	_, _, err := BuildWhereClause(def, 1)

	assert.ErrorContains(t, err, "unknown segment field")
}

func TestBuildWhereClauseUnknownOperatorRejected(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: "regex", Value: json.RawMessage(`"x"`)},
		},
	}

	_, _, err := BuildWhereClause(def, 1)

	assert.ErrorContains(t, err, "unknown operator")
}

func TestBuildWhereClauseEmptyInRejected(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpIn, Value: json.RawMessage(`[]`)},
		},
	}

	_, _, err := BuildWhereClause(def, 1)

	assert.ErrorContains(t, err, "at least one value")
}

func TestBuildWhereClauseNonScalarValueRejected(t *testing.T) {
	def := &SegmentDefinition{
		Filters: []SegmentFilter{
			{Field: "status", Operator: OpEquals, Value: json.RawMessage(`{"nested":true}`)},
		},
	}

	_, _, err := BuildWhereClause(def, 1)

	assert.ErrorContains(t, err, "scalar")
}
