// Package resolver is the persistent Opout → Operation store the
// validator and state assembler resolve previous assignments against.
// Grounded on node/store/db.go's bucket-per-kind bbolt layout, repurposed
// from a header/UTXO key-value store into an operation/bundle store
// addressed by OpId and BundleId instead of block hash and outpoint.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
)

var (
	bucketOperations = []byte("operations_by_opid")
	bucketBundles    = []byte("bundles_by_bundleid")
	bucketWitness    = []byte("bundleid_by_witness_txid")
)

const (
	opKindGenesis    byte = 0x00
	opKindTransition byte = 0x01
)

// Store is a bbolt-backed operation/bundle store, one file per contract
// datadir (mirrors node/store/db.go's one-bbolt-file-per-chain layout).
type Store struct {
	path string
	db   *bolt.DB
	log  *zap.Logger
}

// Open creates or opens the store at path, ensuring datadir and buckets
// exist.
func Open(path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("resolver: path required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("resolver: mkdir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("resolver: open bbolt: %w", err)
	}

	s := &Store{path: path, db: db, log: log}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketOperations, bucketBundles, bucketWitness} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log.Info("resolver store opened", zap.String("path", path))
	return s, nil
}

// Close releases the underlying bbolt file handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutGenesis persists g under id.
func (s *Store) PutGenesis(id model.OpId, g *model.Genesis) error {
	val := append([]byte{opKindGenesis}, strictenc.Encode(g)...)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOperations).Put(id[:], val)
	})
}

// PutTransition persists t under id.
func (s *Store) PutTransition(id model.OpId, t *model.Transition) error {
	val := append([]byte{opKindTransition}, strictenc.Encode(t)...)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOperations).Put(id[:], val)
	})
}

// GetGenesis fetches the genesis stored under id, if any.
func (s *Store) GetGenesis(id model.OpId) (*model.Genesis, bool, error) {
	raw, ok, err := s.getOperationRaw(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	if raw.kind != opKindGenesis {
		return nil, false, nil
	}
	var g model.Genesis
	if err := strictenc.Decode(raw.payload, &g); err != nil {
		return nil, false, fmt.Errorf("resolver: decode genesis %x: %w", id, err)
	}
	return &g, true, nil
}

// GetTransition fetches the transition stored under id, if any.
func (s *Store) GetTransition(id model.OpId) (*model.Transition, bool, error) {
	raw, ok, err := s.getOperationRaw(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	if raw.kind != opKindTransition {
		return nil, false, nil
	}
	var t model.Transition
	if err := strictenc.Decode(raw.payload, &t); err != nil {
		return nil, false, fmt.Errorf("resolver: decode transition %x: %w", id, err)
	}
	return &t, true, nil
}

type rawOperation struct {
	kind    byte
	payload []byte
}

func (s *Store) getOperationRaw(id model.OpId) (rawOperation, bool, error) {
	var out rawOperation
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketOperations).Get(id[:])
		if v == nil {
			return nil
		}
		if len(v) < 1 {
			return fmt.Errorf("resolver: corrupt operation record for %x", id)
		}
		out = rawOperation{kind: v[0], payload: append([]byte(nil), v[1:]...)}
		found = true
		return nil
	})
	return out, found, err
}

// PutBundle persists b under id.
func (s *Store) PutBundle(id model.BundleId, b *model.TransitionBundle) error {
	val := strictenc.Encode(b)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBundles).Put(id[:], val)
	})
}

// GetBundle fetches the bundle stored under id, if any.
func (s *Store) GetBundle(id model.BundleId) (*model.TransitionBundle, bool, error) {
	var out *model.TransitionBundle
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBundles).Get(id[:])
		if v == nil {
			return nil
		}
		var b model.TransitionBundle
		if err := strictenc.Decode(v, &b); err != nil {
			return fmt.Errorf("resolver: decode bundle %x: %w", id, err)
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// IndexWitness records that bundleId was closed by witnessTxid, so a
// caller walking confirmed transactions can find the bundle it anchors.
func (s *Store) IndexWitness(witnessTxid [32]byte, bundleId model.BundleId) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWitness).Put(witnessTxid[:], bundleId[:])
	})
}

// LookupByWitness returns the bundle closed by witnessTxid, if indexed.
func (s *Store) LookupByWitness(witnessTxid [32]byte) (model.BundleId, bool, error) {
	var out model.BundleId
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketWitness).Get(witnessTxid[:])
		if v == nil {
			return nil
		}
		if len(v) != 32 {
			return fmt.Errorf("resolver: corrupt witness index entry")
		}
		copy(out[:], v)
		found = true
		return nil
	})
	return out, found, err
}

// ResolveOpout implements validate.Resolver against the persisted
// operation set.
func (s *Store) ResolveOpout(out model.Opout) (model.AssignmentType, int, bool) {
	raw, ok, err := s.getOperationRaw(out.Op)
	if err != nil || !ok {
		return 0, 0, false
	}
	switch raw.kind {
	case opKindGenesis:
		var g model.Genesis
		if err := strictenc.Decode(raw.payload, &g); err != nil {
			return 0, 0, false
		}
		ta, ok := g.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	case opKindTransition:
		var t model.Transition
		if err := strictenc.Decode(raw.payload, &t); err != nil {
			return 0, 0, false
		}
		ta, ok := t.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	default:
		return 0, 0, false
	}
}
