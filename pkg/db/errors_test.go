package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm sentinel", fmt.Errorf("create sale: %w", gorm.ErrDuplicatedKey), true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pgx other constraint", &pgconn.PgError{Code: "23503"}, false},
		{"pq unique", &pq.Error{Code: "23505"}, true},
		{"pq other", &pq.Error{Code: "42P01"}, false},
		{"plain error", errors.New("duplicate key value"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) {
		t.Fatal("expected record-not-found to classify")
	}
	if !IsNotFound(fmt.Errorf("find sale: %w", gorm.ErrRecordNotFound)) {
		t.Fatal("expected wrapped record-not-found to classify")
	}
	if IsNotFound(errors.New("not found")) {
		t.Fatal("message matching must not classify")
	}
}
