package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"anchorledger/internal/ledger/models"
)

// Run exiting on context cancellation is the orderly shutdown path and must
// not surface the cancellation as an error to the process lifecycle.
func TestRunStopsCleanlyOnCancel(t *testing.T) {
	p := &Publisher{inbox: make(chan models.AuditLog, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
