package commands

import (
	"testing"
)

const testKey = "test-signing-key"

func TestGenTokenRoundTrip(t *testing.T) {
	access, refresh, err := GenToken(AuthClaims{ID: 42, EmployeeID: 7, Role: "EMPLOYEE"}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens, got access=%q refresh=%q", access, refresh)
	}

	accessClaims, refreshClaims, err := VerifyTokens(access, refresh, testKey)
	if err != nil {
		t.Fatalf("VerifyTokens: %v", err)
	}

	if accessClaims.UserId != 42 || accessClaims.EmployeeID != 7 || accessClaims.Role != "EMPLOYEE" {
		t.Fatalf("access claims mismatch: %+v", accessClaims)
	}
	if accessClaims.Type != "access" {
		t.Fatalf("access token type = %q, want access", accessClaims.Type)
	}
	if refreshClaims.Type != "refresh" {
		t.Fatalf("refresh token type = %q, want refresh", refreshClaims.Type)
	}
}

func TestVerifyTokensRejectsAccessAsRefresh(t *testing.T) {
	access, _, err := GenToken(AuthClaims{ID: 42, Role: "EMPLOYEE"}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	if _, _, err := VerifyTokens(access, access, testKey); err == nil {
		t.Fatalf("expected error when the refresh slot holds an access token")
	}
}

func TestVerifyTokensRejectsMismatchedPair(t *testing.T) {
	access, _, err := GenToken(AuthClaims{ID: 1, Role: "EMPLOYEE"}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	_, refresh, err := GenToken(AuthClaims{ID: 2, Role: "EMPLOYEE"}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	if _, _, err := VerifyTokens(access, refresh, testKey); err == nil {
		t.Fatalf("expected error for tokens of different users")
	}
}

func TestVerifyTokensRejectsWrongKey(t *testing.T) {
	access, refresh, err := GenToken(AuthClaims{ID: 42, Role: "EMPLOYEE"}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	if _, _, err := VerifyTokens(access, refresh, "other-key"); err == nil {
		t.Fatalf("expected error for tokens signed with a different key")
	}
}
