package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("nope")
	mapped := ToDomainError(original)
	if mapped.Code != "FORBIDDEN" || mapped.HTTPStatus != 403 {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading user: %w", NewUnauthorized("bad token"))
	mapped := ToDomainError(wrapped)
	if mapped.Code != "UNAUTHORIZED" {
		t.Fatalf("wrapped DomainError not unwrapped: %+v", mapped)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != 404 {
		t.Fatalf("pgx.ErrNoRows should map to 404: %+v", mapped)
	}
}

func TestToDomainErrorGeneric(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != 500 {
		t.Fatalf("generic errors should map to 500: %+v", mapped)
	}
	if mapped.Message != "internal server error" {
		t.Fatalf("internal cause leaked into message: %q", mapped.Message)
	}
}
