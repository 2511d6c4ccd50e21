package store

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"

	"listing/internal/domain/models"
)

type payload struct {
	Users []models.Record `json:"users"`
}

// Load parses a dataset payload: a JSON object whose "users" array holds
// the records. Gzip-compressed payloads are accepted. A payload without
// "users" is an empty dataset.
func Load(raw []byte) ([]models.Record, error) {
	raw, err := decompress(raw)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.Users == nil {
		return []models.Record{}, nil
	}
	return p.Users, nil
}

func decompress(raw []byte) ([]byte, error) {
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
