package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches sql.ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped sql.ErrNoRows", func(t *testing.T) {
		err := fmt.Errorf("get team: %w", sql.ErrNoRows)
		if !isNotFound(err) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("connection refused")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "games_external_id_key"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("matches wrapped 23505", func(t *testing.T) {
		err := fmt.Errorf("insert game: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Constraint: "games_home_team_fkey"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fmt.Errorf("duplicate key value")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestOptionalString(t *testing.T) {
	if got := optionalString(""); got != nil {
		t.Fatalf("expected nil for empty string, got %q", *got)
	}
	got := optionalString("https://assets.nhle.com/logos/nhl/svg/TOR_light.svg")
	if got == nil || *got != "https://assets.nhle.com/logos/nhl/svg/TOR_light.svg" {
		t.Fatalf("unexpected pointer value: %v", got)
	}
}

func TestNullStringPtr(t *testing.T) {
	if got := nullStringPtr(sql.NullString{}); got != nil {
		t.Fatalf("expected nil for null string, got %q", *got)
	}
	got := nullStringPtr(sql.NullString{String: "America/Toronto", Valid: true})
	if got == nil || *got != "America/Toronto" {
		t.Fatalf("unexpected pointer value: %v", got)
	}
}

func TestNullInt64IntPtr(t *testing.T) {
	if got := nullInt64IntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null int, got %d", *got)
	}
	got := nullInt64IntPtr(sql.NullInt64{Int64: 4, Valid: true})
	if got == nil || *got != 4 {
		t.Fatalf("unexpected pointer value: %v", got)
	}
}
