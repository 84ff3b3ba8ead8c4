package verification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
)

type recordedSend struct {
	to, subject, text string
}

type stubSender struct {
	sent []recordedSend
	err  error
}

func (s *stubSender) Send(_ context.Context, to, subject, text, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, recordedSend{to: to, subject: subject, text: text})
	return nil
}

type stubVerifier struct {
	startErr error
	approved bool
	checkErr error
	phone    string
	code     string
}

func (s *stubVerifier) Start(_ context.Context, phone string) error {
	s.phone = phone
	return s.startErr
}

func (s *stubVerifier) Check(_ context.Context, phone, code string) (bool, error) {
	s.phone = phone
	s.code = code
	return s.approved, s.checkErr
}

func pendingUser() *entity.User {
	return &entity.User{
		Name:        "Ann",
		Email:       "a@x.com",
		PhoneNumber: "+15551234567",
		Status:      entity.StatusPending,
	}
}

func TestEmailCodeIssue(t *testing.T) {
	sender := &stubSender{}
	ch := NewEmailCodeChannel(sender)

	issued, err := ch.Issue(context.Background(), pendingUser())
	require.NoError(t, err)
	assert.Len(t, issued.Code, 6)
	assert.False(t, issued.IssuedAt.IsZero())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@x.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].text, issued.Code)
}

func TestEmailCodeIssueDeliveryFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("550 rejected")}
	ch := NewEmailCodeChannel(sender)

	_, err := ch.Issue(context.Background(), pendingUser())
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestEmailCodeCheck(t *testing.T) {
	ch := NewEmailCodeChannel(&stubSender{})
	u := pendingUser()
	u.SetChallenge("123456", time.Now())

	ok, err := ch.Check(context.Background(), u, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ch.Check(context.Background(), u, "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	// no outstanding challenge means nothing can match, including ""
	u.ClearChallenge()
	ok, err = ch.Check(context.Background(), u, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSMSCodeIssue(t *testing.T) {
	v := &stubVerifier{}
	ch := NewSMSCodeChannel(v)

	issued, err := ch.Issue(context.Background(), pendingUser())
	require.NoError(t, err)
	assert.Empty(t, issued.Code, "the provider owns the secret")
	assert.Equal(t, "+15551234567", v.phone)
}

func TestSMSCodeIssueProviderDown(t *testing.T) {
	v := &stubVerifier{startErr: errors.New("401 unauthorized")}
	ch := NewSMSCodeChannel(v)

	_, err := ch.Issue(context.Background(), pendingUser())
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestSMSCodeCheck(t *testing.T) {
	v := &stubVerifier{approved: true}
	ch := NewSMSCodeChannel(v)

	ok, err := ch.Check(context.Background(), pendingUser(), "424242")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "424242", v.code)

	// empty input is rejected locally without a provider round trip
	v.code = ""
	ok, err = ch.Check(context.Background(), pendingUser(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v.code)
}

func TestEmailLinkIssue(t *testing.T) {
	sender := &stubSender{}
	jwt := helpers.NewJWTManager("s", "link-secret")
	ch := NewEmailLinkChannel(sender, jwt, "http://localhost:4000/api/user/verify-email")

	issued, err := ch.Issue(context.Background(), pendingUser())
	require.NoError(t, err)
	assert.Empty(t, issued.Code)

	require.Len(t, sender.sent, 1)
	body := sender.sent[0].text
	i := strings.Index(body, "?token=")
	require.Greater(t, i, 0, "mail body carries the verification link")

	token := body[i+len("?token="):]
	claims, err := jwt.ParseLinkToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestEmailLinkCheckUnsupported(t *testing.T) {
	ch := NewEmailLinkChannel(&stubSender{}, helpers.NewJWTManager("s", "l"), "")
	_, err := ch.Check(context.Background(), pendingUser(), "123456")
	assert.ErrorIs(t, err, ErrCheckUnsupported)
}

func TestRegistry(t *testing.T) {
	email := NewEmailCodeChannel(&stubSender{})
	smsCh := NewSMSCodeChannel(&stubVerifier{})
	reg := NewRegistry(email, smsCh)

	got, ok := reg.Get(entity.MethodEmailOTP)
	require.True(t, ok)
	assert.Same(t, email, got)

	_, ok = reg.Get(entity.MethodEmailLink)
	assert.False(t, ok)
}
