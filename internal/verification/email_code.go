package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
	"github.com/oksasatya/foodstore-auth/pkg/mailer"
)

// EmailCodeChannel delivers a locally generated 6-digit code by email and
// verifies it by exact comparison against the stored challenge.
type EmailCodeChannel struct {
	Mail mailer.Sender
}

func NewEmailCodeChannel(mail mailer.Sender) *EmailCodeChannel {
	return &EmailCodeChannel{Mail: mail}
}

func (ch *EmailCodeChannel) Method() entity.VerificationMethod {
	return entity.MethodEmailOTP
}

func (ch *EmailCodeChannel) Issue(ctx context.Context, u *entity.User) (*Issued, error) {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return nil, err
	}
	subject := "Your OTP for Email Verification"
	text := fmt.Sprintf("Your OTP is %s", code)
	if err := ch.Mail.Send(ctx, u.Email, subject, text, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return &Issued{Code: code, IssuedAt: time.Now()}, nil
}

func (ch *EmailCodeChannel) Check(_ context.Context, u *entity.User, supplied string) (bool, error) {
	if !u.HasChallenge() || supplied == "" {
		return false, nil
	}
	return u.OTPCode == supplied, nil
}

var _ Channel = (*EmailCodeChannel)(nil)
