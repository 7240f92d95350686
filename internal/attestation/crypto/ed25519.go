// Package crypto adapts host-supplied signature verification.
//
// The ledger core never implements cryptography; it consumes a verify
// primitive. Ed25519Verifier is the default adapter: it resolves an issuer's
// registered public key and delegates to crypto/ed25519.
package crypto

import (
	"crypto/ed25519"
	"sync"

	"anchorledger/pkg/domain"
)

// Ed25519Verifier verifies signatures against registered issuer keys.
type Ed25519Verifier struct {
	mu   sync.RWMutex
	keys map[domain.Address]ed25519.PublicKey
}

func NewEd25519Verifier() *Ed25519Verifier {
	return &Ed25519Verifier{keys: make(map[domain.Address]ed25519.PublicKey)}
}

// RegisterKey binds a public key to an issuer address. Host wiring calls
// this when an issuer is onboarded.
func (v *Ed25519Verifier) RegisterKey(issuer domain.Address, key ed25519.PublicKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys[issuer] = key
}

// Verify reports whether signature is the issuer's valid signature over
// message. Unknown issuers verify as false.
func (v *Ed25519Verifier) Verify(issuer domain.Address, message, signature []byte) bool {
	v.mu.RLock()
	key, ok := v.keys[issuer]
	v.mu.RUnlock()
	if !ok || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(key, message, signature)
}
