package utxostore

import (
	"github.com/pkg/errors"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/infrastructure/db/database"
)

// Resolver populates the UTXO entries of mutable transactions out of a Store.
type Resolver struct {
	store *Store
}

// NewResolver returns a Resolver over the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Populate resolves every unset entry slot of the given transaction against
// the UTXO set. If any referenced outpoint is not in the set, the slots that
// were resolved stay resolved and an error listing the missing outpoints is
// returned.
func (r *Resolver) Populate(mutableTx *externalapi.MutableTransaction) error {
	var missingOutpoints []*externalapi.DomainOutpoint

	for iterator := mutableTx.MissingOutpoints(); iterator.Next(); {
		outpoint, inputIndex := iterator.Get()
		entry, err := r.store.Get(outpoint)
		if err != nil {
			if database.IsNotFoundError(err) {
				missingOutpoints = append(missingOutpoints, outpoint)
				continue
			}
			return err
		}
		mutableTx.Entries[inputIndex] = entry
	}

	if len(missingOutpoints) > 0 {
		log.Debugf("Transaction %s references %d missing outpoints", mutableTx.ID(), len(missingOutpoints))
		return errors.Errorf("transaction %s references outpoints missing from the UTXO set: %s",
			mutableTx.ID(), missingOutpoints)
	}
	return nil
}
