package dynok_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/dynok"
	"github.com/reoring/dynok/dsl"
)

// Micro: small object with numeric fields
var smallDoc = []byte(`{"type":"Point","properties":{"a":1,"b":2.5,"c":-3.75}}`)

// Macro: one property holding a large list of small objects
func hugeListDoc(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"type":"Batch","properties":{"items":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`{"type":"Point","properties":{"x":`)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(`,"y":`)
		sb.WriteString(strconv.Itoa(i * 2))
		sb.WriteString(`,"z":0.5}}`)
	}
	sb.WriteString(`]}}`)
	return []byte(sb.String())
}

func benchDecode(b *testing.B, data []byte, opt dynok.DecodeOpt) {
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dynok.FromJSONBytes(data, opt); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_Small_GoJSON(b *testing.B) {
	benchDecode(b, smallDoc, dynok.DecodeOpt{Driver: dynok.DriverGoJSON})
}

func Benchmark_Decode_Small_Stdlib(b *testing.B) {
	benchDecode(b, smallDoc, dynok.DecodeOpt{Driver: dynok.DriverStdlib})
}

func Benchmark_Decode_Small_Narrow(b *testing.B) {
	benchDecode(b, smallDoc, dynok.DecodeOpt{NumberMode: dynok.NumberNarrow})
}

func Benchmark_Decode_HugeList_GoJSON(b *testing.B) {
	benchDecode(b, hugeListDoc(10000), dynok.DecodeOpt{Driver: dynok.DriverGoJSON})
}

func Benchmark_Decode_HugeList_Stdlib(b *testing.B) {
	benchDecode(b, hugeListDoc(10000), dynok.DecodeOpt{Driver: dynok.DriverStdlib})
}

func Benchmark_Decode_HugeList_DupIgnore(b *testing.B) {
	benchDecode(b, hugeListDoc(10000), dynok.DecodeOpt{OnDuplicateKey: dynok.DupIgnore})
}

func Benchmark_Encode_HugeList(b *testing.B) {
	o, err := dynok.FromJSONBytes(hugeListDoc(10000))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = o.AppendJSON(buf[:0])
	}
	b.SetBytes(int64(len(buf)))
}

func Benchmark_Set_CopyOnWrite(b *testing.B) {
	builder := dsl.Object("Wide")
	for i := 0; i < 64; i++ {
		builder.Property("p"+strconv.Itoa(i), int64(i))
	}
	o := builder.MustBuild()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := o.Set("p0", "changed"); err != nil {
			b.Fatal(err)
		}
	}
}
