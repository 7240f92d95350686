package models

import (
	"crypto/sha256"
	"encoding/binary"

	"anchorledger/pkg/domain"
)

// PayloadHashSize is the required length of an attestation payload hash.
const PayloadHashSize = 32

// Attestation is a signed claim by an issuer about a subject, bound to a
// payload hash and timestamp. Immutable once issued; never deleted.
type Attestation struct {
	ID        uint64         `json:"id"`
	Issuer    domain.Address `json:"issuer"`
	Subject   domain.Address `json:"subject"`
	// Timestamp is the Unix time the issuer signed over.
	Timestamp   uint64 `json:"timestamp"`
	PayloadHash []byte `json:"payload_hash"`
	Signature   []byte `json:"signature"`
}

// CanonicalMessage is the byte sequence the issuer's signature must verify
// against: issuer and subject NUL-terminated, then the fixed-size payload
// hash, then the timestamp big-endian. The encoding is length-unambiguous.
func CanonicalMessage(issuer, subject domain.Address, payloadHash []byte, timestamp uint64) []byte {
	msg := make([]byte, 0, len(issuer)+len(subject)+2+PayloadHashSize+8)
	msg = append(msg, issuer...)
	msg = append(msg, 0)
	msg = append(msg, subject...)
	msg = append(msg, 0)
	msg = append(msg, payloadHash...)
	msg = binary.BigEndian.AppendUint64(msg, timestamp)
	return msg
}

// ClaimFingerprint digests the full claim including the signature. Two
// issuance requests with the same fingerprint are the same claim; the store
// rejects the second so IDs stay unique per claim.
func (a Attestation) ClaimFingerprint() [32]byte {
	h := sha256.New()
	h.Write(CanonicalMessage(a.Issuer, a.Subject, a.PayloadHash, a.Timestamp))
	h.Write(a.Signature)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
