package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Creature is one population member as persisted in a snapshot file.
// Generation is decoded as a pointer so a missing key is detectable;
// by construction every written snapshot carries it.
type Creature struct {
	Name       string   `json:"name,omitempty"`
	Tag        uint64   `json:"tag,omitempty"`
	Generation *int     `json:"generation,omitempty"`
	Fitness    *Fitness `json:"fitness,omitempty"`
}

// Fitness holds the weighted score map plus the scalar cached after
// evaluation. Unevaluated creatures have no cached scalar.
type Fitness struct {
	Weighting    string             `json:"weighting,omitempty"`
	CachedScalar *float64           `json:"cached_scalar,omitempty"`
	Scores       map[string]float64 `json:"scores,omitempty"`
}

// Scalar is an optional float64. An invalid Scalar is a real "no value yet"
// state, distinct from zero, and serializes as JSON null.
type Scalar struct {
	Float64 float64
	Valid   bool
}

func Float(v float64) Scalar {
	return Scalar{Float64: v, Valid: true}
}

func Absent() Scalar {
	return Scalar{}
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Float64)
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Scalar{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Scalar{Float64: v, Valid: true}
	return nil
}

// Column is one named column of optional scalars.
type Column struct {
	Name   string   `json:"name"`
	Values []Scalar `json:"values"`
}

// Table is a pair of equal-length columns; row i is
// (Col1.Values[i], Col2.Values[i]) in input order.
type Table struct {
	Col1 Column `json:"col1"`
	Col2 Column `json:"col2"`
}

func NewTable(col1, col2 string) Table {
	return Table{
		Col1: Column{Name: col1},
		Col2: Column{Name: col2},
	}
}

func (t Table) Len() int {
	return len(t.Col1.Values)
}

func (t *Table) AppendRow(v1, v2 Scalar) {
	t.Col1.Values = append(t.Col1.Values, v1)
	t.Col2.Values = append(t.Col2.Values, v2)
}

// Append concatenates other onto t. Column names must match; rows keep
// their order and nothing is deduplicated.
func (t *Table) Append(other Table) error {
	if t.Col1.Name != other.Col1.Name || t.Col2.Name != other.Col2.Name {
		return fmt.Errorf("column name mismatch: (%s,%s) vs (%s,%s)",
			t.Col1.Name, t.Col2.Name, other.Col1.Name, other.Col2.Name)
	}
	t.Col1.Values = append(t.Col1.Values, other.Col1.Values...)
	t.Col2.Values = append(t.Col2.Values, other.Col2.Values...)
	return nil
}

// TableRecord is a cataloged table with its provenance.
type TableRecord struct {
	VersionedRecord
	ID           string `json:"id"`
	Name         string `json:"name"`
	Population   string `json:"population,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
	Table        Table  `json:"table"`
}

// SoupEntry is one word/count pair from a soup dump. Dumps exist in two
// shapes: ["word", count] pairs and {"word": ..., "count": ...} objects.
type SoupEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func (e *SoupEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []json.RawMessage
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("soup entry must be a [word, count] pair, got %d elements", len(pair))
		}
		if err := json.Unmarshal(pair[0], &e.Word); err != nil {
			return err
		}
		return json.Unmarshal(pair[1], &e.Count)
	}

	type alias SoupEntry
	var obj alias
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	*e = SoupEntry(obj)
	return nil
}
