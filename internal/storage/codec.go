package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/leengari/recordstore/internal/domain/data"
	"github.com/leengari/recordstore/internal/domain/errors"
)

// Format is the document encoding of a persisted unit
type Format string

const (
	FormatJSON Format = "json"
	FormatBSON Format = "bson"
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatBSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported unit format %q", s)
}

// Codec turns a TableUnit into bytes and back. The pair also decides the
// file suffix that identifies table units during discovery.
type Codec struct {
	Format      Format
	Compression Compression
}

// DefaultCodec writes plain indented JSON units
func DefaultCodec() Codec {
	return Codec{Format: FormatJSON, Compression: CompressionNone}
}

// ParseCodec builds a codec from configuration strings
func ParseCodec(format, compression string) (Codec, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return Codec{}, err
	}
	c, err := ParseCompression(compression)
	if err != nil {
		return Codec{}, err
	}
	return Codec{Format: f, Compression: c}, nil
}

// Suffix is the file name suffix of table units, e.g. ".json" or ".bson.zst"
func (c Codec) Suffix() string {
	return "." + string(c.format()) + c.Compression.extension()
}

func (c Codec) String() string {
	return string(c.format()) + "+" + string(c.compression())
}

func (c Codec) format() Format {
	if c.Format == "" {
		return FormatJSON
	}
	return c.Format
}

func (c Codec) compression() Compression {
	if c.Compression == "" {
		return CompressionNone
	}
	return c.Compression
}

// Encode serialises the unit and compresses the result
func (c Codec) Encode(u *TableUnit) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch c.format() {
	case FormatJSON:
		raw, err = encodeJSON(u)
	case FormatBSON:
		raw, err = encodeBSON(u)
	default:
		return nil, fmt.Errorf("unsupported unit format %q", string(c.Format))
	}
	if err != nil {
		return nil, err
	}
	return c.compression().compress(raw)
}

// Decode decompresses and parses a unit. Row values come back exactly as the
// document decoder produced them (json.Number, int32, ...); callers normalise
// them against the schema.
func (c Codec) Decode(b []byte) (*TableUnit, error) {
	raw, err := c.compression().decompress(b)
	if err != nil {
		return nil, errors.Corruptf("decompress %s: %v", c.compression(), err)
	}
	switch c.format() {
	case FormatJSON:
		return decodeJSON(raw)
	case FormatBSON:
		return decodeBSON(raw)
	}
	return nil, fmt.Errorf("unsupported unit format %q", string(c.Format))
}

// CountRows counts the rows of an encoded unit without decoding row contents
func (c Codec) CountRows(b []byte) (int, error) {
	raw, err := c.compression().decompress(b)
	if err != nil {
		return 0, errors.Corruptf("decompress %s: %v", c.compression(), err)
	}
	switch c.format() {
	case FormatJSON:
		var doc struct {
			Rows []json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return 0, errors.Corruptf("json: %v", err)
		}
		return len(doc.Rows), nil
	case FormatBSON:
		var doc struct {
			Rows []bson.Raw `bson:"rows"`
		}
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return 0, errors.Corruptf("bson: %v", err)
		}
		return len(doc.Rows), nil
	}
	return 0, fmt.Errorf("unsupported unit format %q", string(c.Format))
}

type jsonUnit struct {
	Columns []ColumnMeta `json:"columns"`
	Rows    []data.Row   `json:"rows"`
}

func encodeJSON(u *TableUnit) ([]byte, error) {
	names := u.columnNames()
	doc := jsonUnit{
		Columns: u.Columns,
		Rows:    make([]data.Row, len(u.Rows)),
	}
	if doc.Columns == nil {
		doc.Columns = []ColumnMeta{}
	}
	for i, r := range u.Rows {
		doc.Rows[i] = data.FromMap(names, r)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unit: %w", err)
	}
	return out, nil
}

func decodeJSON(raw []byte) (*TableUnit, error) {
	var doc struct {
		Columns []ColumnMeta     `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Corruptf("json: %v", err)
	}
	if doc.Columns == nil {
		return nil, errors.Corruptf("missing %q", "columns")
	}
	if doc.Rows == nil {
		return nil, errors.Corruptf("missing %q", "rows")
	}
	return &TableUnit{Columns: doc.Columns, Rows: doc.Rows}, nil
}

func encodeBSON(u *TableUnit) ([]byte, error) {
	cols := u.Columns
	if cols == nil {
		cols = []ColumnMeta{}
	}
	rows := make(bson.A, len(u.Rows))
	for i, r := range u.Rows {
		d := make(bson.D, 0, len(cols))
		for _, c := range cols {
			d = append(d, bson.E{Key: c.Name, Value: r[c.Name]})
		}
		rows[i] = d
	}

	out, err := bson.Marshal(bson.D{
		{Key: "columns", Value: cols},
		{Key: "rows", Value: rows},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unit: %w", err)
	}
	return out, nil
}

func decodeBSON(raw []byte) (*TableUnit, error) {
	if err := bson.Raw(raw).Validate(); err != nil {
		return nil, errors.Corruptf("bson: %v", err)
	}
	for _, key := range []string{"columns", "rows"} {
		if _, err := bson.Raw(raw).LookupErr(key); err != nil {
			return nil, errors.Corruptf("missing %q", key)
		}
	}

	var doc struct {
		Columns []ColumnMeta `bson:"columns"`
		Rows    []bson.M     `bson:"rows"`
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Corruptf("bson: %v", err)
	}

	u := &TableUnit{
		Columns: doc.Columns,
		Rows:    make([]map[string]any, len(doc.Rows)),
	}
	if u.Columns == nil {
		u.Columns = []ColumnMeta{}
	}
	for i, r := range doc.Rows {
		u.Rows[i] = map[string]any(r)
	}
	return u, nil
}
