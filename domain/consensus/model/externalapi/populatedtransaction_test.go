package externalapi_test

import (
	"testing"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
)

func TestPopulatedTransaction(t *testing.T) {
	tx := testTransaction(t)
	entries := testEntries(t, tx)
	populatedTx := externalapi.NewPopulatedTransaction(tx, entries)

	if populatedTx.Tx() != tx {
		t.Fatalf("populated transaction returned a different underlying transaction")
	}
	if !populatedTx.ID().Equal(tx.ID()) {
		t.Fatalf("populated transaction has wrong ID. Want: %s, got: %s", tx.ID(), populatedTx.ID())
	}

	iterator := externalapi.NewPopulatedInputIterator(populatedTx)
	if iterator.Len() != len(tx.Inputs) {
		t.Fatalf("populated input iterator has wrong length. Want: %d, got: %d", len(tx.Inputs), iterator.Len())
	}
	for i := 0; iterator.Next(); i++ {
		input, entry := iterator.Get()
		if input != tx.Inputs[i] {
			t.Fatalf("populated input iterator returned wrong input at index %d", i)
		}
		if !entry.Equal(entries[i]) {
			t.Fatalf("populated input iterator returned wrong entry at index %d", i)
		}
	}
}

func TestNewPopulatedTransactionPanicsOnCountMismatch(t *testing.T) {
	tx := testTransaction(t)

	defer func() {
		if recover() == nil {
			t.Fatalf("NewPopulatedTransaction expected to panic on an entry count mismatch")
		}
	}()
	externalapi.NewPopulatedTransaction(tx, testEntries(t, tx)[:1])
}

func TestValidatedTransaction(t *testing.T) {
	tx := testTransaction(t)
	tx.SubnetworkID = externalapi.SubnetworkIDNative
	tx.Finalize()
	entries := testEntries(t, tx)

	populatedTx := externalapi.NewPopulatedTransaction(tx, entries)
	validatedTx := externalapi.NewValidatedTransaction(populatedTx, 42)

	if validatedTx.CalculatedFee() != 42 {
		t.Fatalf("validated transaction has wrong fee. Want: %d, got: %d", 42, validatedTx.CalculatedFee())
	}
	if !validatedTx.ID().Equal(tx.ID()) {
		t.Fatalf("validated transaction has wrong ID. Want: %s, got: %s", tx.ID(), validatedTx.ID())
	}
	_, entry := validatedTx.PopulatedInput(1)
	if !entry.Equal(entries[1]) {
		t.Fatalf("validated transaction returned wrong entry for input 1")
	}
}

func TestValidatedTransactionCoinbase(t *testing.T) {
	tx := testTransaction(t)
	validatedTx := externalapi.NewValidatedTransactionCoinbase(tx)

	if validatedTx.CalculatedFee() != 0 {
		t.Fatalf("coinbase transactions carry no fee, got: %d", validatedTx.CalculatedFee())
	}
	if !validatedTx.IsCoinBase() {
		t.Fatalf("validated coinbase expected to report IsCoinBase")
	}
}

func TestNewValidatedTransactionCoinbasePanicsOnNonCoinbase(t *testing.T) {
	tx := testTransaction(t)
	tx.SubnetworkID = externalapi.SubnetworkIDNative

	defer func() {
		if recover() == nil {
			t.Fatalf("NewValidatedTransactionCoinbase expected to panic on a non-coinbase transaction")
		}
	}()
	externalapi.NewValidatedTransactionCoinbase(tx)
}
