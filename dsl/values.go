package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"time"

	goshape "github.com/reoring/goshape"
)

// toFloat reads any Go numeric value or json.Number as float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// typeName names the runtime kind of v for type_mismatch messages.
func typeName(v any) string {
	if goshape.IsUndefined(v) {
		return "undefined"
	}
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case *big.Int, big.Int:
		return "bigint"
	case time.Time:
		return "date"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	case float32:
		if math.IsNaN(float64(t)) {
			return "nan"
		}
		return "number"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Func:
		return "function"
	case reflect.Pointer:
		return "pointer"
	}
	return "unknown"
}

// literalKey maps v to a comparable key so equal literals from different Go
// representations (int 1, float64 1, json.Number "1") compare equal.
func literalKey(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return nil
		}
		if t.IsInt64() {
			return float64(t.Int64())
		}
		return "bigint:" + t.String()
	case time.Time:
		return "date:" + t.UTC().Format(time.RFC3339Nano)
	}
	if v == nil || reflect.TypeOf(v).Comparable() {
		return v
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// formatLiteral renders a literal for messages: strings quoted, others as is.
func formatLiteral(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	if goshape.IsUndefined(v) {
		return "undefined"
	}
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

// cloneValue deep-copies the container types produced by decoding so a
// default value is never shared between two outputs.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case *big.Int:
		if t == nil {
			return t
		}
		return new(big.Int).Set(t)
	}
	return v
}

// asMap accepts map[string]any and any other map with string keys.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asSlice accepts []any and any other slice or array.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

type mapEntry struct {
	key   any
	label string
	value any
}

// mapEntries lists the entries of any Go map ordered by their printed key.
func mapEntries(v any) ([]mapEntry, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		out = append(out, mapEntry{key: k, label: fmt.Sprint(k), value: iter.Value().Interface()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
