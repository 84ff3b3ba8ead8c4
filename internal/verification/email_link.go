package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
	"github.com/oksasatya/foodstore-auth/pkg/mailer"
)

// LinkTTL bounds how long a verification link stays valid.
const LinkTTL = 24 * time.Hour

// EmailLinkChannel mints a signed token carrying the user's email identity
// and mails a verification URL. The token is verified by signature and
// expiry, never by stored-value comparison, so this channel stores nothing
// on the user record.
type EmailLinkChannel struct {
	Mail      mailer.Sender
	JWT       *helpers.JWTManager
	VerifyURL string
}

func NewEmailLinkChannel(mail mailer.Sender, jwt *helpers.JWTManager, verifyURL string) *EmailLinkChannel {
	return &EmailLinkChannel{Mail: mail, JWT: jwt, VerifyURL: verifyURL}
}

func (ch *EmailLinkChannel) Method() entity.VerificationMethod {
	return entity.MethodEmailLink
}

func (ch *EmailLinkChannel) Issue(ctx context.Context, u *entity.User) (*Issued, error) {
	token, _, err := ch.JWT.GenerateLinkToken(u.Email, LinkTTL)
	if err != nil {
		return nil, err
	}
	link := ch.VerifyURL + "?token=" + token
	subject := "Verify your email"
	text := fmt.Sprintf("Click the link to verify your email: %s", link)
	if err := ch.Mail.Send(ctx, u.Email, subject, text, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return &Issued{IssuedAt: time.Now()}, nil
}

// Check is not part of this channel; link verification goes through the
// token endpoint and is validated statelessly by the state machine.
func (ch *EmailLinkChannel) Check(context.Context, *entity.User, string) (bool, error) {
	return false, ErrCheckUnsupported
}

var _ Channel = (*EmailLinkChannel)(nil)
