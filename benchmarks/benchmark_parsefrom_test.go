package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

// ---- Helpers ----

func smallUserSchema(strict bool) goshape.Schema {
	s := g.Object().
		Field("id", g.String()).
		Field("name", g.String().Optional())
	if strict {
		return s.Strict()
	}
	return s
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice"}`)
}

func itemSchema() goshape.Schema {
	return g.Object().
		Field("id", g.String()).
		Field("name", g.String()).
		Field("age", g.Number().Int().NonNegative()).
		Field("active", g.Boolean()).
		Field("meta", g.Object().Field("score", g.Number()))
}

// generateJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":"obj_%d","name":"n%d","age":%d,"active":%t,"meta":{"score":%d}`, i, i, i, i%2 == 0, i)
		for k := 0; k < extraFields; k++ {
			fmt.Fprintf(&buf, `,"k%d":"v%d"`, k, k)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func benchSource(b *testing.B, s goshape.Schema, data []byte, src func([]byte) goshape.Source, opts ...goshape.ParseOpt) {
	ctx := context.Background()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := goshape.ParseFrom(ctx, s, src(data), opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func jsonBytes(data []byte) goshape.Source  { return goshape.JSONBytes(data) }
func jsonReader(data []byte) goshape.Source { return goshape.JSONReader(bytes.NewReader(data)) }

// ---- Small object ----

func Benchmark_Small_Strict_JSONBytes(b *testing.B) {
	benchSource(b, smallUserSchema(true), smallUserJSON(), jsonBytes)
}

func Benchmark_Small_Strip_JSONBytes(b *testing.B) {
	benchSource(b, smallUserSchema(false), smallUserJSON(), jsonBytes)
}

func Benchmark_Small_Strict_JSONReader(b *testing.B) {
	benchSource(b, smallUserSchema(true), smallUserJSON(), jsonReader)
}

func Benchmark_Small_DuplicateKeyCheck(b *testing.B) {
	opt := goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error}}
	benchSource(b, smallUserSchema(true), smallUserJSON(), jsonBytes, opt)
}

// ---- Large arrays ----

func Benchmark_Array_1k_Strip(b *testing.B) {
	benchSource(b, g.Array(itemSchema()), generateJSONArray(1000, 8), jsonBytes)
}

func Benchmark_Array_1k_Reader(b *testing.B) {
	benchSource(b, g.Array(itemSchema()), generateJSONArray(1000, 8), jsonReader)
}

func Benchmark_Array_10k_NoExtra(b *testing.B) {
	benchSource(b, g.Array(itemSchema()), generateJSONArray(10000, 0), jsonBytes)
}
