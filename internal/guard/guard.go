// Package guard holds request-level protections in front of the ledger:
// per-caller rate limiting and idempotency-key deduplication for mutations.
package guard

import "context"

// Result reports a guard decision.
type Result struct {
	Allowed bool
	Reason  string
	Guard   string
}

// Guard is a named admission check keyed by caller or request identity.
type Guard interface {
	Check(ctx context.Context, key string) Result
}
