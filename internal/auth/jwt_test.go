package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokensIssueVerify(t *testing.T) {
	tokens := NewTokens("secret", "rollcall", time.Hour)
	tok, exp, err := tokens.Issue("acc-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("unexpected expiry window %s", d)
	}
	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.AccountID != "acc-1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokensPayloadKeepsAccountIDApartFromJTI(t *testing.T) {
	tok, _, err := NewTokens("secret", "rollcall", time.Hour).Issue("acc-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts", len(parts))
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["id"] != "acc-1" || payload["sub"] != "acc-1" {
		t.Fatalf("payload = %v, want id and sub set to the account", payload)
	}
	if _, ok := payload["jti"]; ok {
		t.Fatalf("payload = %v, jti should stay unset", payload)
	}

	claims := Claims{AccountID: "acc-1"}
	claims.ID = "token-1"
	if claims.RegisteredClaims.ID != "token-1" || claims.AccountID != "acc-1" {
		t.Fatalf("claims.ID does not reach the registered jti: %+v", claims)
	}
}

func TestTokensRejectWrongKey(t *testing.T) {
	tok, _, err := NewTokens("secret", "rollcall", time.Hour).Issue("acc-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokens("other", "rollcall", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokensRejectWrongIssuer(t *testing.T) {
	tok, _, err := NewTokens("secret", "someone-else", time.Hour).Issue("acc-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokens("secret", "rollcall", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokensRejectExpired(t *testing.T) {
	tokens := NewTokens("secret", "rollcall", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := tokens.Issue("acc-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tokens.now = time.Now
	if _, err := tokens.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokensRejectGarbage(t *testing.T) {
	if _, err := NewTokens("secret", "", time.Hour).Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
