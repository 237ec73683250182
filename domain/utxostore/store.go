package utxostore

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/multiset"
	"github.com/casparnet/caspad/domain/consensus/utils/serialization"
	"github.com/casparnet/caspad/infrastructure/db/database"
	"github.com/casparnet/caspad/infrastructure/logger"
)

var utxoSetBucket = database.MakeBucket([]byte("utxo-set"))

// Store holds the UTXO set in a database and maintains a multiset
// commitment over it. The commitment is rebuilt from the database
// when the store is opened and updated incrementally afterwards.
type Store struct {
	db  database.Database
	ms  *multiset.Multiset
	len int
}

// New opens a Store over the given database, scanning the existing
// UTXO set to rebuild its commitment.
func New(db database.Database) (*Store, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "utxostore.New")
	defer onEnd()

	store := &Store{
		db: db,
		ms: multiset.New(),
	}

	cursor, err := db.Cursor(utxoSetBucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	for cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		serializedEntry, err := cursor.Value()
		if err != nil {
			return nil, err
		}

		outpoint, err := deserializeOutpointKey(key.Suffix())
		if err != nil {
			return nil, err
		}
		entry, err := deserializeEntryValue(serializedEntry)
		if err != nil {
			return nil, err
		}

		err = store.addToMultiset(outpoint, entry)
		if err != nil {
			return nil, err
		}
		store.len++
	}

	log.Debugf("Loaded %d UTXO entries, commitment: %s", store.len, store.Commitment())
	return store, nil
}

// Get returns the UTXO entry associated with the given outpoint. It returns
// an error wrapping database.ErrNotFound if the outpoint is not in the set.
func (s *Store) Get(outpoint *externalapi.DomainOutpoint) (*externalapi.UTXOEntry, error) {
	key, err := outpointKey(outpoint)
	if err != nil {
		return nil, err
	}
	serializedEntry, err := s.db.Get(key)
	if err != nil {
		return nil, err
	}
	return deserializeEntryValue(serializedEntry)
}

// Has returns whether the given outpoint is in the UTXO set.
func (s *Store) Has(outpoint *externalapi.DomainOutpoint) (bool, error) {
	key, err := outpointKey(outpoint)
	if err != nil {
		return false, err
	}
	return s.db.Has(key)
}

// Add adds the given outpoint/entry pair to the UTXO set. Adding an
// outpoint that is already in the set is an error, as it would corrupt
// the multiset commitment.
func (s *Store) Add(outpoint *externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) error {
	key, err := outpointKey(outpoint)
	if err != nil {
		return err
	}

	exists, err := s.db.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("outpoint %s is already in the UTXO set", outpoint)
	}

	serializedEntry := &bytes.Buffer{}
	err = serialization.SerializeUTXOEntry(serializedEntry, entry)
	if err != nil {
		return err
	}
	err = s.db.Put(key, serializedEntry.Bytes())
	if err != nil {
		return err
	}

	err = s.addToMultiset(outpoint, entry)
	if err != nil {
		return err
	}
	s.len++
	return nil
}

// Remove removes the given outpoint from the UTXO set. Removing an outpoint
// that is not in the set is an error.
func (s *Store) Remove(outpoint *externalapi.DomainOutpoint) error {
	entry, err := s.Get(outpoint)
	if err != nil {
		if database.IsNotFoundError(err) {
			return errors.Wrapf(err, "cannot remove outpoint %s", outpoint)
		}
		return err
	}

	key, err := outpointKey(outpoint)
	if err != nil {
		return err
	}
	err = s.db.Delete(key)
	if err != nil {
		return err
	}

	serializedUTXO, err := serialization.SerializeUTXO(entry, outpoint)
	if err != nil {
		return err
	}
	s.ms.Remove(serializedUTXO)
	s.len--
	return nil
}

// Len returns the number of entries currently in the UTXO set.
func (s *Store) Len() int {
	return s.len
}

// Commitment returns the multiset hash committing to the current UTXO set.
func (s *Store) Commitment() *externalapi.DomainHash {
	return s.ms.Hash()
}

func (s *Store) addToMultiset(outpoint *externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) error {
	serializedUTXO, err := serialization.SerializeUTXO(entry, outpoint)
	if err != nil {
		return err
	}
	s.ms.Add(serializedUTXO)
	return nil
}

func outpointKey(outpoint *externalapi.DomainOutpoint) (*database.Key, error) {
	serializedOutpoint := &bytes.Buffer{}
	err := serialization.SerializeOutpoint(serializedOutpoint, outpoint)
	if err != nil {
		return nil, err
	}
	return utxoSetBucket.Key(serializedOutpoint.Bytes()), nil
}

func deserializeOutpointKey(keySuffix []byte) (*externalapi.DomainOutpoint, error) {
	return serialization.DeserializeOutpoint(bytes.NewReader(keySuffix))
}

func deserializeEntryValue(serializedEntry []byte) (*externalapi.UTXOEntry, error) {
	return serialization.DeserializeUTXOEntry(bytes.NewReader(serializedEntry))
}
