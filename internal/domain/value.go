package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// numForm records how a number payload is held.
type numForm uint8

const (
	numFloat numForm = iota
	numInt
	numUint
)

// Value is a JSON-like substitution value: string, number, bool, list or map.
// The zero Value is null and renders as an empty string. Integers keep their
// exact value; only Number holds a float.
type Value struct {
	kind ValueKind
	str  string
	form numForm
	num  float64
	i    int64
	u    uint64
	b    bool
	list []Value
	m    map[string]Value
}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Int(i int64) Value      { return Value{kind: KindNumber, form: numInt, i: i} }
func Uint(u uint64) Value    { return Value{kind: KindNumber, form: numUint, u: u} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v.Clone()
	}
	return Value{kind: KindMap, m: cp}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Str returns the string payload when v holds a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return Value{kind: KindList, list: items}
	case KindMap:
		return Map(v.m)
	default:
		return v
	}
}

// Native converts v into plain Go values suitable for a template engine.
// Null map entries are dropped so they behave exactly like missing keys;
// null list items become empty strings.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.nativeNumber()
	case KindBool:
		return v.b
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			if item.IsNull() {
				items[i] = ""
				continue
			}
			items[i] = item.Native()
		}
		return items
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			if item.IsNull() {
				continue
			}
			out[k] = item.Native()
		}
		return out
	default:
		return nil
	}
}

// nativeNumber hands integers to the template engine as integers. Integral
// floats too large for int64 become their plain decimal text so they never
// render in exponent form.
func (v Value) nativeNumber() any {
	switch v.form {
	case numInt:
		return v.i
	case numUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u)
		}
		return v.u
	}
	if v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0) {
		if math.Abs(v.num) < 1<<63 {
			return int64(v.num)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.num
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		switch v.form {
		case numInt:
			return []byte(strconv.FormatInt(v.i, 10)), nil
		case numUint:
			return []byte(strconv.FormatUint(v.u, 10)), nil
		}
		return json.Marshal(v.num)
	case KindList:
		return json.Marshal(v.list)
	case KindMap:
		out := make(map[string]Value, len(v.m))
		for k, item := range v.m {
			if !item.IsNull() {
				out[k] = item
			}
		}
		return json.Marshal(out)
	}
	return json.Marshal(v.Native())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts decoded JSON/YAML data or ordinary Go values into a Value.
// Types without a structured equivalent are stored in their fmt string form.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{}
	case Value:
		return t.Clone()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i)
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return Uint(u)
		}
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	case fmt.Stringer:
		return String(t.String())
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		return Value{kind: KindList, list: items}
	case reflect.Map:
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = FromAny(iter.Value().Interface())
		}
		return Value{kind: KindMap, m: m}
	case reflect.Pointer:
		if rv.IsNil() {
			return Value{}
		}
		return FromAny(rv.Elem().Interface())
	}
	return String(fmt.Sprint(x))
}

// Substitutions is the key/value store placeholders are resolved against.
type Substitutions map[string]Value

// Set inserts or overwrites key.
func (s Substitutions) Set(key string, v Value) { s[key] = v }

// Get returns the value for key; a missing key yields a null Value.
func (s Substitutions) Get(key string) (Value, bool) {
	v, ok := s[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (s Substitutions) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of s. Cloning a nil map yields an empty one.
func (s Substitutions) Clone() Substitutions {
	out := make(Substitutions, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// Native converts s into template bindings.
func (s Substitutions) Native() map[string]any {
	out, _ := Value{kind: KindMap, m: s}.Native().(map[string]any)
	return out
}

// SubstitutionsFromAny converts a decoded mapping into Substitutions.
func SubstitutionsFromAny(m map[string]any) Substitutions {
	out := make(Substitutions, len(m))
	for k, v := range m {
		out[k] = FromAny(v)
	}
	return out
}
