package models

import "anchorledger/pkg/domain"

// Operation types recorded in the audit trail.
const (
	OpTypeRegister   = "register"   // endpoint or anchor-service registration
	OpTypeAttest     = "attest"     // attestation issuance
	OpTypeEndpoint   = "endpoint"   // quote submission
	OpTypeComparison = "comparison" // quote comparison
)

// Operation statuses. A context starts pending and is finalized exactly once.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
)

// InteractionSession is a caller-scoped sequence of operations bound by a
// strictly increasing nonce for replay protection.
type InteractionSession struct {
	SessionID uint64         `json:"session_id"`
	Initiator domain.Address `json:"initiator"`
	// CreatedAt is a Unix timestamp in seconds.
	CreatedAt uint64 `json:"created_at"`
	// OperationCount equals the number of operation contexts recorded for
	// this session.
	OperationCount uint64 `json:"operation_count"`
	// Nonce strictly increases with each accepted operation. Callers must
	// present the current value to begin the next operation.
	Nonce uint64 `json:"nonce"`
}

// Ref identifies a session-bound request: the session plus the nonce the
// caller expects to consume.
type Ref struct {
	SessionID uint64 `json:"session_id"`
	Nonce     uint64 `json:"nonce"`
}

// OperationContext is one operation within a session. OperationIndex is
// 0-based, strictly increasing within the session, assigned exactly once.
type OperationContext struct {
	SessionID      uint64 `json:"session_id"`
	OperationIndex uint64 `json:"operation_index"`
	OperationType  string `json:"operation_type"`
	// Timestamp is a Unix timestamp in seconds.
	Timestamp uint64 `json:"timestamp"`
	Status    string `json:"status"`
	// ResultData carries the operation's numeric result: an attestation ID,
	// a winning quote ID, or zero when the operation has no numeric result.
	ResultData uint64 `json:"result_data"`
}
