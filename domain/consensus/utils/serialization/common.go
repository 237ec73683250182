package serialization

import (
	"bytes"
	"io"

	"github.com/casparnet/caspad/util/binaryserializer"
	"github.com/pkg/errors"
)

// errMalformed signifies that the data being deserialized does not describe a
// well-formed entity. Callers should treat it as a recoverable decode failure.
var errMalformed = errors.New("malformed data")

// IsMalformedError returns whether err signifies malformed serialized data
func IsMalformedError(err error) bool {
	return errors.Is(err, errMalformed)
}

// asMalformedError makes sure decode failures carry the errMalformed sentinel,
// so that truncation errors surfacing as io.EOF and friends are reported the
// same way as explicit consistency failures.
func asMalformedError(err error) error {
	if IsMalformedError(err) {
		return err
	}
	return errors.Wrapf(errMalformed, "%s", err)
}

func writeVarBytes(w io.Writer, data []byte) error {
	err := binaryserializer.PutUint64(w, uint64(len(data)))
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return errors.WithStack(err)
}

// readVarBytes reads an 8-byte little-endian length followed by that many
// bytes. The length is checked against the amount of data actually left in
// the reader, so a corrupt length prefix cannot trigger a huge allocation.
func readVarBytes(r *bytes.Reader) ([]byte, error) {
	dataLength, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	if dataLength > uint64(r.Len()) {
		return nil, errors.Wrapf(errMalformed, "encoded length is %d bytes, but only %d bytes remain",
			dataLength, r.Len())
	}

	data := make([]byte, dataLength)
	_, err = io.ReadFull(r, data)
	return data, errors.WithStack(err)
}
