package schema

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/leengari/recordstore/internal/domain/errors"
	"gotest.tools/v3/assert"
)

func productsSchema() Schema {
	return Schema{
		{Name: "title", Type: TypeString},
		{Name: "price", Type: TypeFloat},
	}
}

func TestParseTypeTag(t *testing.T) {
	cases := map[string]TypeTag{
		"string":  TypeString,
		"str":     TypeString,
		"INT":     TypeInt,
		"integer": TypeInt,
		"float":   TypeFloat,
		"double":  TypeFloat,
		"boolean": TypeBool,
		" date ":  TypeDate,
	}
	for in, want := range cases {
		got, err := ParseTypeTag(in)
		assert.NilError(t, err, in)
		assert.Equal(t, got, want, in)
	}

	_, err := ParseTypeTag("decimal")
	assert.ErrorContains(t, err, `unknown column type "decimal"`)
}

func TestTypeTagAccepts(t *testing.T) {
	day := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		tag  TypeTag
		v    any
		want bool
	}{
		{TypeString, "x", true},
		{TypeString, 1, false},
		{TypeInt, 1, true},
		{TypeInt, int8(1), true},
		{TypeInt, uint32(7), true},
		{TypeInt, uint64(math.MaxUint64), false},
		{TypeInt, 1.0, false},
		{TypeInt, true, false},
		{TypeFloat, 9.99, true},
		{TypeFloat, float32(1.5), true},
		{TypeFloat, 10, false},
		{TypeFloat, math.Inf(1), false},
		{TypeFloat, math.Inf(-1), false},
		{TypeFloat, math.NaN(), false},
		{TypeFloat, float32(math.Inf(1)), false},
		{TypeBool, false, true},
		{TypeBool, "true", false},
		{TypeDate, day, true},
		{TypeDate, "2024-01-13", false},
		{TypeString, nil, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.tag.Accepts(tc.v), tc.want, "%s accepts %#v", tc.tag, tc.v)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, TypeName("a"), "string")
	assert.Equal(t, TypeName(math.NaN()), "non-finite float")
	assert.Equal(t, TypeName(int16(3)), "int")
	assert.Equal(t, TypeName(float32(3)), "float")
	assert.Equal(t, TypeName(time.Now()), "date")
	assert.Equal(t, TypeName(nil), "nil")
	assert.Equal(t, TypeName([]byte("x")), "[]uint8")
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, Canonical(int32(4)), any(int64(4)))
	assert.Equal(t, Canonical(float32(0.5)), any(float64(0.5)))
	assert.Equal(t, Canonical(time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)), any("2024-03-09"))
	assert.Equal(t, Canonical("x"), any("x"))
}

func TestSchemaValidate(t *testing.T) {
	assert.NilError(t, productsSchema().Validate())
	assert.NilError(t, Schema{}.Validate())

	err := Schema{{Name: "a", Type: TypeInt}, {Name: "a", Type: TypeString}}.Validate()
	assert.Assert(t, errors.IsValidation(err))
	assert.ErrorContains(t, err, "duplicate column name")

	err = Schema{{Name: " ", Type: TypeInt}}.Validate()
	assert.ErrorContains(t, err, "empty name")

	err = Schema{{Name: "a", Type: "decimal"}}.Validate()
	assert.ErrorContains(t, err, `unknown column type "decimal"`)
}

func TestCheckValuesArityFirst(t *testing.T) {
	_, err := productsSchema().CheckValues("products", []any{"Widget"})
	assert.Assert(t, errors.IsValidation(err))
	assert.ErrorContains(t, err, "field count mismatch: given 1, expected 2")

	// wrong arity wins even when types are also wrong
	_, err = productsSchema().CheckValues("products", []any{1, 2, 3})
	assert.ErrorContains(t, err, "field count mismatch")
}

func TestCheckValuesFirstFailingFieldWins(t *testing.T) {
	_, err := productsSchema().CheckValues("products", []any{42, "cheap"})
	assert.Assert(t, errors.IsValidation(err))
	assert.ErrorContains(t, err, `field "title"`)
	assert.ErrorContains(t, err, `given "int", expected "string"`)

	_, err = productsSchema().CheckValues("products", []any{"Widget", "cheap"})
	assert.ErrorContains(t, err, `field "price"`)
	assert.ErrorContains(t, err, `given "string", expected "float"`)
}

func TestCheckValuesCanonicalises(t *testing.T) {
	s := Schema{
		{Name: "n", Type: TypeInt},
		{Name: "f", Type: TypeFloat},
		{Name: "d", Type: TypeDate},
	}
	out, err := s.CheckValues("t", []any{uint8(3), float32(2), time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)})
	assert.NilError(t, err)
	assert.DeepEqual(t, out, []any{int64(3), float64(2), "2020-02-29"})
}

func TestColumnDecode(t *testing.T) {
	intCol := Column{Name: "n", Type: TypeInt}
	v, err := intCol.Decode(json.Number("12"))
	assert.NilError(t, err)
	assert.Equal(t, v, any(int64(12)))

	v, err = intCol.Decode(int32(5))
	assert.NilError(t, err)
	assert.Equal(t, v, any(int64(5)))

	_, err = intCol.Decode(json.Number("1.5"))
	assert.Assert(t, err != nil)

	floatCol := Column{Name: "f", Type: TypeFloat}
	v, err = floatCol.Decode(json.Number("10"))
	assert.NilError(t, err)
	assert.Equal(t, v, any(float64(10)))

	dateCol := Column{Name: "d", Type: TypeDate}
	v, err = dateCol.Decode("2024-01-13")
	assert.NilError(t, err)
	assert.Equal(t, v, any("2024-01-13"))

	_, err = Column{Name: "s", Type: TypeString}.Decode(true)
	assert.ErrorContains(t, err, `column "s": stored bool does not match type string`)
}

func TestSchemaHelpers(t *testing.T) {
	s := productsSchema()
	assert.DeepEqual(t, s.Names(), []string{"title", "price"})

	col, ok := s.Lookup("price")
	assert.Assert(t, ok)
	assert.Equal(t, col.Type, TypeFloat)
	_, ok = s.Lookup("missing")
	assert.Assert(t, !ok)

	clone := s.Clone()
	clone[0].Name = "changed"
	assert.Equal(t, s[0].Name, "title")
	assert.DeepEqual(t, s, productsSchema())
}
