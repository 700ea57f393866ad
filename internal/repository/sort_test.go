package repository

import (
	"errors"
	"testing"

	"github.com/Raymond9734/crm-backend/internal/models"
)

func TestBuildOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty falls back to default", "", "id ASC", false},
		{"ascending field", "name", "name ASC", false},
		{"descending field", "-name", "name DESC", false},
		{"another field", "email", "email ASC", false},
		{"unknown field rejected", "password", "", true},
		{"sql injection rejected", "id; DROP TABLE customers", "", true},
		{"bare dash rejected", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildOrderClause(tt.orderBy, "id ASC", customerSortColumns)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildOrderClause(%q) error = nil, want error", tt.orderBy)
				}
				var appErr *models.AppError
				if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidInput {
					t.Errorf("buildOrderClause(%q) error = %v, want INVALID_INPUT", tt.orderBy, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("buildOrderClause(%q) error = %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("buildOrderClause(%q) = %q, want %q", tt.orderBy, got, tt.want)
			}
		})
	}
}
