package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/rqpush/rqpush/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny_Scalars(t *testing.T) {
	assert.Equal(t, domain.KindNull, domain.FromAny(nil).Kind())
	assert.Equal(t, domain.String("x"), domain.FromAny("x"))
	assert.Equal(t, domain.Bool(true), domain.FromAny(true))
	assert.Equal(t, domain.Int(3), domain.FromAny(3))
	assert.Equal(t, domain.Number(2.5), domain.FromAny(2.5))
	assert.Equal(t, domain.Uint(7), domain.FromAny(uint8(7)))
}

func TestFromAny_Structured(t *testing.T) {
	v := domain.FromAny(map[string]any{
		"items": []string{"a", "b"},
		"owner": map[string]any{"name": "ada"},
	})
	require.Equal(t, domain.KindMap, v.Kind())

	native, ok := v.Native().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, native["items"])
	assert.Equal(t, map[string]any{"name": "ada"}, native["owner"])
}

func TestFromAny_UnknownTypeUsesStringForm(t *testing.T) {
	type point struct{ X, Y int }
	v := domain.FromAny(point{1, 2})
	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, "{1 2}", s)
}

func TestValue_NativeIntegralNumbers(t *testing.T) {
	assert.Equal(t, int64(3), domain.Number(3).Native())
	assert.Equal(t, 3.25, domain.Number(3.25).Native())
	assert.Equal(t, int64(7), domain.Uint(7).Native())
}

func TestValue_LargeIntegersStayExact(t *testing.T) {
	assert.Equal(t, int64(1234567890123456), domain.FromAny(int64(1234567890123456)).Native())
	assert.Equal(t, int64(9007199254740993), domain.FromAny(int64(9007199254740993)).Native())
	assert.Equal(t, uint64(math.MaxUint64), domain.FromAny(uint64(math.MaxUint64)).Native())
	assert.Equal(t, "10000000000000000000000", domain.Number(1e22).Native())

	data, err := json.Marshal(domain.FromAny(int64(9007199254740993)))
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", string(data))

	var v domain.Value
	require.NoError(t, json.Unmarshal([]byte(`{"ns":1700000000123456789}`), &v))
	native, ok := v.Native().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000123456789), native["ns"])
}

func TestSubstitutions_NativeDropsNull(t *testing.T) {
	s := domain.Substitutions{
		"present": domain.String("yes"),
		"absent":  {},
		"list":    domain.List(domain.String("a"), domain.Value{}),
	}
	native := s.Native()
	_, hasAbsent := native["absent"]
	assert.False(t, hasAbsent)
	assert.Equal(t, "yes", native["present"])
	assert.Equal(t, []any{"a", ""}, native["list"])
}

func TestSubstitutions_CloneIsDeep(t *testing.T) {
	orig := domain.Substitutions{
		"m": domain.Map(map[string]domain.Value{"k": domain.String("v")}),
	}
	cp := orig.Clone()
	cp["m"] = domain.String("replaced")
	cp["new"] = domain.Bool(false)

	assert.Equal(t, domain.KindMap, orig["m"].Kind())
	assert.Len(t, orig, 1)
}

func TestSubstitutions_Keys(t *testing.T) {
	s := domain.Substitutions{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
}

func TestValue_JSON(t *testing.T) {
	var v domain.Value
	require.NoError(t, json.Unmarshal([]byte(`{"n":1,"list":[true,"x"],"nil":null}`), &v))
	assert.Equal(t, domain.KindMap, v.Kind())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1,"list":[true,"x"]}`, string(data))
}

func TestSubstitutionsFromAny(t *testing.T) {
	s := domain.SubstitutionsFromAny(map[string]any{"lang": "en", "count": 2})
	assert.Equal(t, domain.String("en"), s["lang"])
	assert.Equal(t, domain.Int(2), s["count"])
}
