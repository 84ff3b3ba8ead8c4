package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/pkg/sms"
)

// SMSCodeChannel delegates both code generation and delivery to the
// external verification service. The service owns the code: nothing is
// stored on the user record and Check calls back into the same service
// instead of comparing locally.
type SMSCodeChannel struct {
	Verify sms.Verifier
}

func NewSMSCodeChannel(verify sms.Verifier) *SMSCodeChannel {
	return &SMSCodeChannel{Verify: verify}
}

func (ch *SMSCodeChannel) Method() entity.VerificationMethod {
	return entity.MethodSMSOTP
}

func (ch *SMSCodeChannel) Issue(ctx context.Context, u *entity.User) (*Issued, error) {
	if err := ch.Verify.Start(ctx, u.PhoneNumber); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return &Issued{IssuedAt: time.Now()}, nil
}

func (ch *SMSCodeChannel) Check(ctx context.Context, u *entity.User, supplied string) (bool, error) {
	if supplied == "" {
		return false, nil
	}
	return ch.Verify.Check(ctx, u.PhoneNumber, supplied)
}

var _ Channel = (*SMSCodeChannel)(nil)
