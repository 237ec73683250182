package externalapi

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// scriptPublicKeyHexPrefixLength is the number of hex characters taken by the
// big-endian version prefix of a script public key's hex form.
const scriptPublicKeyHexPrefixLength = 4

// InvalidLengthError is returned when parsing a script public key hex string
// that is too short to contain the version prefix.
type InvalidLengthError struct {
	Length int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid script public key hex length %d, expected at least %d characters",
		e.Length, scriptPublicKeyHexPrefixLength)
}

// ScriptPublicKey represents a caspad ScriptPublicKey
type ScriptPublicKey struct {
	Version uint16
	// Kept private to preserve read-only semantics
	script []byte
}

// NewScriptPublicKey creates a new ScriptPublicKey over the given script bytes.
// The script is not copied, and must not be modified by the caller afterwards.
func NewScriptPublicKey(version uint16, script []byte) *ScriptPublicKey {
	return &ScriptPublicKey{Version: version, script: script}
}

// Script returns the script bytes. The returned slice is owned by the
// ScriptPublicKey and must be treated as read-only.
func (spk *ScriptPublicKey) Script() []byte {
	return spk.script
}

// Equal returns whether spk equals to other
func (spk *ScriptPublicKey) Equal(other *ScriptPublicKey) bool {
	if spk == nil || other == nil {
		return spk == other
	}

	return spk.Version == other.Version && bytes.Equal(spk.script, other.script)
}

// Less returns true iff spk is ordered before other, comparing versions first
// and script bytes lexicographically second.
func (spk *ScriptPublicKey) Less(other *ScriptPublicKey) bool {
	if spk.Version != other.Version {
		return spk.Version < other.Version
	}
	return bytes.Compare(spk.script, other.script) < 0
}

// Clone returns a clone of spk
func (spk *ScriptPublicKey) Clone() *ScriptPublicKey {
	if spk == nil {
		return nil
	}

	scriptClone := make([]byte, len(spk.script))
	copy(scriptClone, spk.script)
	return &ScriptPublicKey{Version: spk.Version, script: scriptClone}
}

// Hex returns the canonical human-readable form of spk: a single hex string
// whose first four characters are the big-endian representation of the version,
// followed by the hex form of the script bytes.
func (spk *ScriptPublicKey) Hex() string {
	var versionBytes [2]byte
	binary.BigEndian.PutUint16(versionBytes[:], spk.Version)
	return hex.EncodeToString(versionBytes[:]) + hex.EncodeToString(spk.script)
}

// String implements fmt.Stringer using the canonical hex form.
func (spk *ScriptPublicKey) String() string {
	return spk.Hex()
}

// NewScriptPublicKeyFromHex parses the canonical hex form of a ScriptPublicKey.
// A string shorter than the 4-character version prefix fails with
// InvalidLengthError; exactly 4 characters yield an empty script.
func NewScriptPublicKeyFromHex(hexString string) (*ScriptPublicKey, error) {
	if len(hexString) < scriptPublicKeyHexPrefixLength {
		return nil, InvalidLengthError{Length: len(hexString)}
	}

	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	version := binary.BigEndian.Uint16(decoded[:2])
	return &ScriptPublicKey{Version: version, script: decoded[2:]}, nil
}

// MarshalJSON renders spk as its canonical hex string.
func (spk *ScriptPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(spk.Hex())
}

// UnmarshalJSON parses the canonical hex string form of a ScriptPublicKey.
func (spk *ScriptPublicKey) UnmarshalJSON(data []byte) error {
	var hexString string
	err := json.Unmarshal(data, &hexString)
	if err != nil {
		return errors.WithStack(err)
	}

	parsed, err := NewScriptPublicKeyFromHex(hexString)
	if err != nil {
		return err
	}

	*spk = *parsed
	return nil
}
