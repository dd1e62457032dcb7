package domain

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		caller   []string
		allowed  bool
	}{
		{"no roles declared denies everyone", nil, []string{RoleAdmin}, false},
		{"empty declaration denies everyone", []string{}, []string{RoleAdmin}, false},
		{"caller without roles denied", []string{RoleAdmin}, nil, false},
		{"mismatched role denied", []string{RoleAdmin}, []string{RoleUser}, false},
		{"any-of match allowed", []string{RoleAdmin, RoleUser}, []string{RoleUser}, true},
		{"exact match allowed", []string{RoleAdmin}, []string{RoleAdmin}, true},
		{"extra caller roles allowed", []string{RoleModerator}, []string{RoleUser, RoleModerator}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.required, tt.caller)
			if tt.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleModerator, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("role %q should be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Fatalf("unknown role accepted")
	}
}

func TestSaleStatusValid(t *testing.T) {
	for _, status := range []SaleStatus{SalePending, SaleCompleted, SaleCancelled} {
		if !status.Valid() {
			t.Fatalf("status %q should be valid", status)
		}
	}
	if SaleStatus("shipped").Valid() {
		t.Fatalf("unknown status accepted")
	}
}
