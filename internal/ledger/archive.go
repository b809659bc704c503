package ledger

import (
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const archiveVersion = 1

// Archive is a portable snapshot of the ledger.
type Archive struct {
	Version    int       `msgpack:"version"`
	ExportedAt time.Time `msgpack:"exported_at"`
	Games      []Record  `msgpack:"games"`
}

// EncodeArchive writes records as a msgpack archive.
func EncodeArchive(w io.Writer, records []Record) error {
	a := Archive{
		Version:    archiveVersion,
		ExportedAt: time.Now().UTC(),
		Games:      records,
	}
	if err := msgpack.NewEncoder(w).Encode(&a); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return nil
}

// DecodeArchive reads an archive written by EncodeArchive.
func DecodeArchive(r io.Reader) (*Archive, error) {
	var a Archive
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}
	if a.Version != archiveVersion {
		return nil, fmt.Errorf("unsupported archive version %d", a.Version)
	}
	return &a, nil
}
