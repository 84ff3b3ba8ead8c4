package verification

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
)

var (
	// ErrDelivery wraps any transport or provider failure while dispatching
	// a challenge. Callers treat it as fatal for the operation in progress:
	// fail fast, no retry, nothing persisted.
	ErrDelivery = errors.New("challenge delivery failed")
	// ErrCheckUnsupported is returned by channels whose verification does
	// not go through the code-check path (the email link).
	ErrCheckUnsupported = errors.New("channel does not support code checks")
)

// Issued is what a channel leaves behind on the user record after a
// successful dispatch. Code channels return the secret to store; channels
// whose secret lives elsewhere (Twilio, signed links) return an empty code
// and only the issuance timestamp.
type Issued struct {
	Code     string
	IssuedAt time.Time
}

// Channel is one out-of-band verification channel: a cohesive
// generate/dispatch/verify unit selected by the user's verification method.
type Channel interface {
	Method() entity.VerificationMethod

	// Issue generates a channel-appropriate secret and dispatches it to the
	// user's destination. The user record has not necessarily been persisted
	// yet; Issue must not assume a store id exists.
	Issue(ctx context.Context, u *entity.User) (*Issued, error)

	// Check reports whether the supplied code proves channel possession for
	// this user. It must not mutate anything; clearing the challenge on
	// success is the state machine's job.
	Check(ctx context.Context, u *entity.User, supplied string) (bool, error)
}

// Registry resolves a channel by verification method.
type Registry struct {
	channels map[entity.VerificationMethod]Channel
}

func NewRegistry(channels ...Channel) *Registry {
	m := make(map[entity.VerificationMethod]Channel, len(channels))
	for _, ch := range channels {
		m[ch.Method()] = ch
	}
	return &Registry{channels: m}
}

func (r *Registry) Get(method entity.VerificationMethod) (Channel, bool) {
	ch, ok := r.channels[method]
	return ch, ok
}
