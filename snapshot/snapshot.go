// Package snapshot captures the contents of a bridge's class cache for
// diagnostics, in canonical CBOR or TOML.
package snapshot

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/objcbridge/objc"
)

// Snapshot is a point-in-time view of a class cache.
type Snapshot struct {
	Strict  bool    `cbor:"1,keyasint" toml:"strict"`
	Entries []Entry `cbor:"2,keyasint" toml:"entry"`
}

// Entry is one cached class.
type Entry struct {
	Name          string `cbor:"1,keyasint" toml:"name"`
	Superclass    string `cbor:"2,keyasint,omitempty" toml:"superclass,omitempty"`
	HasSuperclass bool   `cbor:"3,keyasint" toml:"has-superclass"`
	RuntimeName   string `cbor:"4,keyasint" toml:"runtime-name"`
	Address       uint64 `cbor:"5,keyasint" toml:"address"`
}

// Key returns the cache key the entry was stored under.
func (e Entry) Key() objc.ClassKey {
	if e.HasSuperclass {
		return objc.SubclassKey(e.Name, e.Superclass)
	}
	return objc.ClassKeyFor(e.Name)
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Take captures b's class cache. Entries are sorted by key.
func Take(b *objc.Bridge) *Snapshot {
	rows := b.Cache().Snapshot()
	s := &Snapshot{
		Strict:  b.Strict(),
		Entries: make([]Entry, 0, len(rows)),
	}
	for _, row := range rows {
		s.Entries = append(s.Entries, Entry{
			Name:          row.Key.Name,
			Superclass:    row.Key.Superclass,
			HasSuperclass: row.Key.HasSuperclass,
			RuntimeName:   b.Runtime().ClassName(row.Data.Class),
			Address:       uint64(row.Data.Class),
		})
	}
	return s
}

// MarshalCBOR serializes s deterministically.
func (s *Snapshot) MarshalCBOR() ([]byte, error) {
	type plain Snapshot
	return encMode.Marshal((*plain)(s))
}

// UnmarshalCBOR deserializes a snapshot.
func (s *Snapshot) UnmarshalCBOR(data []byte) error {
	type plain Snapshot
	if err := cbor.Unmarshal(data, (*plain)(s)); err != nil {
		return fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return nil
}

// WriteTOML writes s as TOML.
func (s *Snapshot) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// WriteText writes one line per entry.
func (s *Snapshot) WriteText(w io.Writer) error {
	for _, e := range s.Entries {
		if _, err := fmt.Fprintf(w, "%-40s %-60s 0x%x\n", e.Key(), e.RuntimeName, e.Address); err != nil {
			return err
		}
	}
	return nil
}
