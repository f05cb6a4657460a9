package storage

import (
	"errors"
	"reflect"
	"testing"
)

func TestTableRecordCodecRoundTrip(t *testing.T) {
	input := tableRecord("t1", "2026-08-30T10:00:00Z")

	encoded, err := EncodeTableRecord(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeTableRecord(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("roundtrip mismatch\nactual=%+v\nexpected=%+v", decoded, input)
	}
}

func TestDecodeTableRecordVersionMismatch(t *testing.T) {
	input := tableRecord("t1", "2026-08-30T10:00:00Z")
	input.CodecVersion++

	encoded, err := EncodeTableRecord(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err = DecodeTableRecord(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestDecodeTableRecordMalformed(t *testing.T) {
	if _, err := DecodeTableRecord([]byte("{")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
