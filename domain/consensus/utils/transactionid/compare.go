package transactionid

import (
	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
)

// Less returns true iff transaction ID a is less than transaction ID b.
// IDs are compared backwards because they are stored as little endian
// byte arrays.
func Less(a, b *externalapi.DomainTransactionID) bool {
	for i := externalapi.DomainHashSize - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return true
		case a[i] > b[i]:
			return false
		}
	}
	return false
}
