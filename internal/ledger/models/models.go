package models

import (
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
)

// AuditLog is one immutable, globally ordered record of a completed
// operation. LogID is a global, gapless, monotonically increasing sequence
// across all sessions: the canonical total order of mutating actions.
type AuditLog struct {
	LogID     uint64                         `json:"log_id"`
	SessionID uint64                         `json:"session_id"`
	Operation sessionmodels.OperationContext `json:"operation"`
	Actor     domain.Address                 `json:"actor"`
}
