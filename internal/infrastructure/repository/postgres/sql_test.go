package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: relation players does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestInsertStringArray_NilBecomesEmpty(t *testing.T) {
	got := insertStringArray(nil)
	if got == nil {
		t.Fatalf("expected non-nil array for nil input")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty array, got %v", got)
	}
}
