package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into domain
// errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: write lost against an existing entity (duplicate claim, reused key)
// - ErrStaleNonce: presented nonce does not match the session's current nonce
// - ErrExpired: quote past its validity window
// - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrStaleNonce  = errors.New("stale nonce")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
