package utxostore

import (
	"github.com/pkg/errors"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/constants"
	"github.com/casparnet/caspad/domain/consensus/utils/txmass"
)

// Validation rule errors. Callers check against these with errors.Is.
var (
	// ErrBadTransactionAmount indicates an input or output amount that is
	// zero, overflows, or exceeds the maximum allowed total of coins.
	ErrBadTransactionAmount = errors.New("invalid transaction amount")

	// ErrSpendTooHigh indicates the transaction outputs spend more than
	// its inputs provide.
	ErrSpendTooHigh = errors.New("total outputs spend more than total inputs")
)

// ValidateTransactionAndCalculateFee checks the amounts of the given populated
// transaction and returns it as a validated transaction carrying its fee.
func ValidateTransactionAndCalculateFee(populatedTx *externalapi.PopulatedTransaction) (*externalapi.ValidatedTransaction, error) {
	if populatedTx.IsCoinBase() {
		return externalapi.NewValidatedTransactionCoinbase(populatedTx.Tx()), nil
	}

	totalSompiIn, err := checkTransactionInputAmounts(populatedTx)
	if err != nil {
		return nil, err
	}

	totalSompiOut, err := checkTransactionOutputAmounts(populatedTx.Outputs())
	if err != nil {
		return nil, err
	}

	if totalSompiIn < totalSompiOut {
		return nil, errors.Wrapf(ErrSpendTooHigh, "transaction %s spends %d which is above its input value of %d",
			populatedTx.ID(), totalSompiOut, totalSompiIn)
	}

	fee := totalSompiIn - totalSompiOut
	return externalapi.NewValidatedTransaction(populatedTx, fee), nil
}

// PopulateMassAndFee validates the amounts of the given fully-populated
// mutable transaction and fills in its calculated fee and mass.
func PopulateMassAndFee(mutableTx *externalapi.MutableTransaction, massCalculator *txmass.Calculator) (*externalapi.ValidatedTransaction, error) {
	if !mutableTx.IsVerifiable() {
		return nil, errors.Errorf("transaction %s is missing UTXO entries", mutableTx.ID())
	}

	validatedTx, err := ValidateTransactionAndCalculateFee(
		externalapi.NewPopulatedTransaction(mutableTx.Tx, mutableTx.Entries))
	if err != nil {
		return nil, err
	}

	fee := validatedTx.CalculatedFee()
	mass := massCalculator.CalculateTransactionMass(mutableTx.Tx)
	mutableTx.CalculatedFee = &fee
	mutableTx.CalculatedMass = &mass
	return validatedTx, nil
}

func checkTransactionInputAmounts(populatedTx *externalapi.PopulatedTransaction) (totalSompiIn uint64, err error) {
	for iterator := externalapi.NewPopulatedInputIterator(populatedTx); iterator.Next(); {
		_, entry := iterator.Get()

		// Ensure the accumulated total does not overflow and stays
		// within the allowed range of coins.
		totalSompiIn, err = checkEntryAmounts(entry, totalSompiIn)
		if err != nil {
			return 0, err
		}
	}
	return totalSompiIn, nil
}

func checkEntryAmounts(entry *externalapi.UTXOEntry, totalSompiInBefore uint64) (totalSompiInAfter uint64, err error) {
	originTxSompi := entry.Amount()
	totalSompiInAfter = totalSompiInBefore + originTxSompi
	if totalSompiInAfter < totalSompiInBefore ||
		totalSompiInAfter > constants.MaxSompi {
		return 0, errors.Wrapf(ErrBadTransactionAmount, "total value of all transaction "+
			"inputs is %d which is higher than max allowed value of %d", totalSompiInBefore, constants.MaxSompi)
	}
	return totalSompiInAfter, nil
}

func checkTransactionOutputAmounts(outputs []*externalapi.DomainTransactionOutput) (totalSompiOut uint64, err error) {
	for _, output := range outputs {
		if output.Value == 0 {
			return 0, errors.Wrapf(ErrBadTransactionAmount, "transaction output value cannot be 0")
		}
		if output.Value > constants.MaxSompi {
			return 0, errors.Wrapf(ErrBadTransactionAmount, "transaction output value of %d is "+
				"higher than max allowed value of %d", output.Value, constants.MaxSompi)
		}

		newTotalSompiOut := totalSompiOut + output.Value
		if newTotalSompiOut < totalSompiOut {
			return 0, errors.Wrapf(ErrBadTransactionAmount, "total value of all transaction "+
				"outputs overflows")
		}
		if newTotalSompiOut > constants.MaxSompi {
			return 0, errors.Wrapf(ErrBadTransactionAmount, "total value of all transaction "+
				"outputs is %d which is higher than max allowed value of %d", newTotalSompiOut, constants.MaxSompi)
		}
		totalSompiOut = newTotalSompiOut
	}
	return totalSompiOut, nil
}
