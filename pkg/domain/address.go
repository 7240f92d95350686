// Package domain holds identifier types shared across features.
package domain

// Address identifies a participant on the network: a session initiator, an
// attestation issuer or subject, or an anchor. The hosting environment
// supplies addresses; the core treats them as opaque.
type Address string

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}

func (a Address) String() string {
	return string(a)
}
