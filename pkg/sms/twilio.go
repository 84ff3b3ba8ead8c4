package sms

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// Verifier starts and checks phone-number verifications. The external
// service owns the code in this channel: nothing is generated or stored
// locally, and Check delegates the comparison to the provider.
type Verifier interface {
	Start(ctx context.Context, phoneNumber string) error
	Check(ctx context.Context, phoneNumber, code string) (bool, error)
}

// TwilioVerifier backs Verifier with the Twilio Verify v2 API.
type TwilioVerifier struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioVerifier(accountSID, authToken, serviceSID string) *TwilioVerifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioVerifier{client: client, serviceSID: serviceSID}
}

// Start asks Twilio Verify to generate and deliver an SMS code.
func (v *TwilioVerifier) Start(_ context.Context, phoneNumber string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")
	_, err := v.client.VerifyV2.CreateVerification(v.serviceSID, params)
	return err
}

// Check submits the user-supplied code to Twilio Verify. Only an explicit
// "approved" status counts as a match; anything else is a mismatch.
func (v *TwilioVerifier) Check(_ context.Context, phoneNumber, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNumber)
	params.SetCode(code)
	resp, err := v.client.VerifyV2.CreateVerificationCheck(v.serviceSID, params)
	if err != nil {
		return false, err
	}
	if resp == nil || resp.Status == nil {
		return false, errors.New("verification check returned no status")
	}
	return *resp.Status == "approved", nil
}

var _ Verifier = (*TwilioVerifier)(nil)
