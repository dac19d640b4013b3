package services

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewAuthService(nil, "test-secret", nil)

	token, err := s.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %q", userID)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewAuthService(nil, "secret-a", nil)
	verifier := NewAuthService(nil, "secret-b", nil)

	token, err := issuer.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	s := NewAuthService(nil, "test-secret", nil)
	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{notFound("classroom not found"), ErrNotFound},
		{forbidden("cannot update status of a blocked member"), ErrForbidden},
		{validation("invalid member status"), ErrValidation},
		{storage(errors.New("connection refused")), ErrStorage},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.kind) {
			t.Fatalf("%v should match kind %v", tc.err, tc.kind)
		}
	}
	if errors.Is(notFound("x"), ErrForbidden) {
		t.Fatal("kinds must not cross-match")
	}
}
