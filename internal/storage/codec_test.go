package storage

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
	"gotest.tools/v3/assert"
)

var allCodecs = []Codec{
	{Format: FormatJSON, Compression: CompressionNone},
	{Format: FormatJSON, Compression: CompressionSnappy},
	{Format: FormatJSON, Compression: CompressionZstd},
	{Format: FormatJSON, Compression: CompressionLZ4},
	{Format: FormatBSON, Compression: CompressionNone},
	{Format: FormatBSON, Compression: CompressionZstd},
}

func sampleUnit() *TableUnit {
	u := NewUnit(schema.Schema{
		{Name: "title", Type: schema.TypeString},
		{Name: "price", Type: schema.TypeFloat},
		{Name: "stock", Type: schema.TypeInt},
	})
	u.Rows = append(u.Rows,
		map[string]any{"title": "Widget", "price": 9.99, "stock": int64(3)},
		map[string]any{"title": "Gadget", "price": 20.0, "stock": int64(0)},
	)
	return u
}

func TestCodecSuffix(t *testing.T) {
	assert.Equal(t, DefaultCodec().Suffix(), ".json")
	assert.Equal(t, Codec{}.Suffix(), ".json")
	assert.Equal(t, Codec{Format: FormatBSON, Compression: CompressionZstd}.Suffix(), ".bson.zst")
	assert.Equal(t, Codec{Format: FormatJSON, Compression: CompressionSnappy}.Suffix(), ".json.sz")
	assert.Equal(t, Codec{Format: FormatJSON, Compression: CompressionLZ4}.Suffix(), ".json.lz4")
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("BSON", "")
	assert.NilError(t, err)
	assert.Equal(t, c, Codec{Format: FormatBSON, Compression: CompressionNone})

	_, err = ParseCodec("yaml", "none")
	assert.ErrorContains(t, err, `unsupported unit format "yaml"`)

	_, err = ParseCodec("json", "gzip")
	assert.ErrorContains(t, err, `unsupported compression "gzip"`)
}

func TestCodecRoundTrip(t *testing.T) {
	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			encoded, err := codec.Encode(sampleUnit())
			assert.NilError(t, err)

			decoded, err := codec.Decode(encoded)
			assert.NilError(t, err)
			assert.DeepEqual(t, decoded.Columns, sampleUnit().Columns)
			assert.Equal(t, len(decoded.Rows), 2)

			s, err := decoded.Schema()
			assert.NilError(t, err)
			for i, want := range sampleUnit().Rows {
				for _, col := range s {
					got, err := col.Decode(decoded.Rows[i][col.Name])
					assert.NilError(t, err)
					assert.Equal(t, got, want[col.Name], "row %d field %s", i, col.Name)
				}
			}

			n, err := codec.CountRows(encoded)
			assert.NilError(t, err)
			assert.Equal(t, n, 2)
		})
	}
}

func TestEmptyUnitKeepsBothFields(t *testing.T) {
	for _, codec := range allCodecs {
		encoded, err := codec.Encode(NewUnit(schema.Schema{{Name: "a", Type: schema.TypeInt}}))
		assert.NilError(t, err)

		decoded, err := codec.Decode(encoded)
		assert.NilError(t, err, codec.String())
		assert.Equal(t, len(decoded.Columns), 1)
		assert.Equal(t, len(decoded.Rows), 0)
	}
}

func TestJSONUnitLayout(t *testing.T) {
	encoded, err := DefaultCodec().Encode(sampleUnit())
	assert.NilError(t, err)
	text := string(encoded)

	assert.Assert(t, strings.HasPrefix(text, "{\n  \"columns\": ["))
	assert.Assert(t, strings.Contains(text, `"type": "float"`))
	assert.Assert(t, strings.Contains(text, `"title": "Widget"`))
	assert.Assert(t, strings.Contains(text, `"stock": 3`))
	// row keys follow column order, not alphabetical order
	assert.Assert(t, strings.Index(text, `"title": "Widget"`) < strings.Index(text, `"price": 9.99`))
	assert.Assert(t, strings.Index(text, `"price": 9.99`) < strings.Index(text, `"stock": 3`))
}

func TestDecodeRejectsIncompleteUnits(t *testing.T) {
	codec := DefaultCodec()

	_, err := codec.Decode([]byte(`{"rows": []}`))
	assert.Assert(t, stderrors.Is(err, errors.ErrCorruptUnit))
	assert.ErrorContains(t, err, `missing "columns"`)

	_, err = codec.Decode([]byte(`{"columns": []}`))
	assert.ErrorContains(t, err, `missing "rows"`)

	_, err = codec.Decode([]byte(`{"columns": [`))
	assert.Assert(t, stderrors.Is(err, errors.ErrCorruptUnit))

	_, err = Codec{Format: FormatBSON}.Decode([]byte("not bson"))
	assert.Assert(t, stderrors.Is(err, errors.ErrCorruptUnit))

	_, err = Codec{Format: FormatJSON, Compression: CompressionSnappy}.Decode([]byte("plain text"))
	assert.Assert(t, stderrors.Is(err, errors.ErrCorruptUnit))
}

func TestUnitSchemaRejectsUnknownType(t *testing.T) {
	u := &TableUnit{Columns: []ColumnMeta{{Name: "a", Type: "decimal"}}}
	_, err := u.Schema()
	assert.ErrorContains(t, err, `column "a": unknown column type "decimal"`)
}

func TestDigestIsStable(t *testing.T) {
	a := Digest([]byte("rows"))
	assert.Equal(t, a, Digest([]byte("rows")))
	assert.Assert(t, a != Digest([]byte("rows!")))
}
