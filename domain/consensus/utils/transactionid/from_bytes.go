package transactionid

import (
	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
)

// FromBytes creates a DomainTransactionID from the given byte slice
func FromBytes(transactionIDBytes []byte) (*externalapi.DomainTransactionID, error) {
	return externalapi.NewDomainTransactionIDFromByteSlice(transactionIDBytes)
}

// FromString creates a DomainTransactionID from the given string
func FromString(str string) (*externalapi.DomainTransactionID, error) {
	return externalapi.NewDomainTransactionIDFromString(str)
}
