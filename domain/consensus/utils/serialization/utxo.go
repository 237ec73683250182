package serialization

import (
	"bytes"
	"io"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/util/binaryserializer"
	"github.com/pkg/errors"
)

// SerializeUTXO returns the byte-slice representation for the given
// UTXOEntry-outpoint pair
func SerializeUTXO(entry *externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	w := &bytes.Buffer{}

	err := SerializeOutpoint(w, outpoint)
	if err != nil {
		return nil, err
	}

	err = SerializeUTXOEntry(w, entry)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// DeserializeUTXO deserializes the given byte slice into a
// UTXOEntry-outpoint pair
func DeserializeUTXO(utxoBytes []byte) (entry *externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint, err error) {
	r := bytes.NewReader(utxoBytes)
	outpoint, err = DeserializeOutpoint(r)
	if err != nil {
		return nil, nil, asMalformedError(err)
	}

	entry, err = DeserializeUTXOEntry(r)
	if err != nil {
		return nil, nil, asMalformedError(err)
	}

	return entry, outpoint, nil
}

// SerializeUTXOEntry serializes the given UTXO entry to w
func SerializeUTXOEntry(w io.Writer, entry *externalapi.UTXOEntry) error {
	err := binaryserializer.PutUint64(w, entry.Amount())
	if err != nil {
		return err
	}

	err = SerializeScriptPublicKey(w, entry.ScriptPublicKey())
	if err != nil {
		return err
	}

	err = binaryserializer.PutUint64(w, entry.BlockDAAScore())
	if err != nil {
		return err
	}

	isCoinbase := uint8(0)
	if entry.IsCoinbase() {
		isCoinbase = 1
	}
	return binaryserializer.PutUint8(w, isCoinbase)
}

// DeserializeUTXOEntry deserializes a UTXO entry from r
func DeserializeUTXOEntry(r *bytes.Reader) (*externalapi.UTXOEntry, error) {
	amount, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	scriptPublicKey, err := DeserializeScriptPublicKey(r)
	if err != nil {
		return nil, err
	}

	blockDAAScore, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	isCoinbase, err := binaryserializer.Uint8(r)
	if err != nil {
		return nil, err
	}
	if isCoinbase > 1 {
		return nil, errors.Wrapf(errMalformed, "invalid isCoinbase flag %d", isCoinbase)
	}

	return externalapi.NewUTXOEntry(amount, scriptPublicKey, blockDAAScore, isCoinbase == 1), nil
}
