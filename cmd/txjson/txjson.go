package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/serialization"
	"github.com/casparnet/caspad/infrastructure/logger"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}
	defer logger.Close()

	if cfg.Transaction != "" {
		err = printTransactionAsJSON(cfg.Transaction, cfg.VerifyID)
		if err != nil {
			printErrorAndExit(err, "Failed to convert transaction to JSON")
		}
		return
	}

	err = printTransactionAsHex(cfg.JSON, cfg.VerifyID)
	if err != nil {
		printErrorAndExit(err, "Failed to convert transaction to binary")
	}
}

func printTransactionAsJSON(transactionHex string, verifyID bool) error {
	serializedTx, err := hex.DecodeString(transactionHex)
	if err != nil {
		return err
	}
	transaction, err := serialization.DeserializeTransaction(serializedTx)
	if err != nil {
		return err
	}
	log.Debugf("Decoded transaction %s from %d bytes", transaction.ID(), len(serializedTx))

	err = maybeVerifyID(transaction, verifyID)
	if err != nil {
		return err
	}

	transactionJSON, err := json.MarshalIndent(transaction, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", transactionJSON)
	return nil
}

func printTransactionAsHex(transactionJSON string, verifyID bool) error {
	transaction := &externalapi.DomainTransaction{}
	err := json.Unmarshal([]byte(transactionJSON), transaction)
	if err != nil {
		return err
	}

	err = maybeVerifyID(transaction, verifyID)
	if err != nil {
		return err
	}

	serializedTx, err := serialization.SerializeTransaction(transaction)
	if err != nil {
		return err
	}
	log.Debugf("Encoded transaction %s into %d bytes", transaction.ID(), len(serializedTx))
	fmt.Printf("%s\n", hex.EncodeToString(serializedTx))
	return nil
}

// maybeVerifyID recomputes the content-derived transaction ID and compares it
// to the one the transaction was carrying.
func maybeVerifyID(transaction *externalapi.DomainTransaction, verifyID bool) error {
	if !verifyID {
		return nil
	}

	carriedID := transaction.ID()
	transaction.Finalize()
	recomputedID := transaction.ID()
	if !carriedID.Equal(recomputedID) {
		return errors.Errorf("transaction carries ID %s but its contents hash to %s",
			carriedID, recomputedID)
	}
	return nil
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
