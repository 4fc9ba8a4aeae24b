package cart

import (
	"context"
	"encoding/json"

	"github.com/electromart/storefrontbackend/lib/mystore"
)

// DefaultSnapshotUID is the storage key used when no visitor-specific key
// applies, mirroring the single well-known slot the storefront always used.
const DefaultSnapshotUID = "cart"

// SnapshotRecord is the durable form of a basket: the lines serialized as a
// JSON array, stored as an opaque payload under a single key.
type SnapshotRecord struct {
	UID     string
	Payload string `datastore:",noindex"`
}

// Snapshots is the thin persistence adapter the basket store saves through
// after every mutation.
type Snapshots interface {
	Load(c context.Context) (Lines, bool, error)
	Save(c context.Context, lines Lines) error
}

type storeSnapshots struct {
	store mystore.Store[SnapshotRecord]
	uid   string
}

// NewSnapshots binds a snapshot slot with the given uid to a generic store.
func NewSnapshots(store mystore.Store[SnapshotRecord], uid string) Snapshots {
	return storeSnapshots{
		store: store,
		uid:   uid,
	}
}

// Load returns the persisted lines. A missing or malformed snapshot yields
// an empty basket and no error: never fatal, only recoverable-to-default.
func (s storeSnapshots) Load(c context.Context) (Lines, bool, error) {
	record, found, err := s.store.Get(c, s.uid)
	if err != nil {
		return Lines{}, false, err
	}
	if !found {
		return Lines{}, false, nil
	}

	lines := Lines{}
	err = json.Unmarshal([]byte(record.Payload), &lines)
	if err != nil {
		return Lines{}, false, nil
	}

	return lines, true, nil
}

func (s storeSnapshots) Save(c context.Context, lines Lines) error {
	if lines == nil {
		lines = Lines{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	return s.store.Put(c, s.uid, SnapshotRecord{
		UID:     s.uid,
		Payload: string(payload),
	})
}
