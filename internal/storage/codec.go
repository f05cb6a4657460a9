package storage

import (
	"encoding/json"
	"errors"

	"neptune/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeTableRecord(r model.TableRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeTableRecord(data []byte) (model.TableRecord, error) {
	var record model.TableRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.TableRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.TableRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
