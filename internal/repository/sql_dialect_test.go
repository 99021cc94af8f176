package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestMonthExprByDialect(t *testing.T) {
	if got := monthExprByDialect("sqlite", "created_at"); got != "strftime('%Y-%m', created_at)" {
		t.Fatalf("sqlite month expr mismatch, got %s", got)
	}
	if got := monthExprByDialect("postgres", "created_at"); got != "to_char(created_at, 'YYYY-MM')" {
		t.Fatalf("postgres month expr mismatch, got %s", got)
	}
}

func TestBuildLikeCondition(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "name LIKE ?") || !strings.Contains(condition, "description LIKE ?") {
		t.Fatalf("unexpected condition: %s", condition)
	}

	pgCondition, _ := buildLikeConditionByDialect("postgres", []string{"name"})
	if !strings.Contains(pgCondition, "name ILIKE ?") {
		t.Fatalf("postgres should use ILIKE, got %s", pgCondition)
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	if got := containsPattern(" 50%_off "); got != `%50\%\_off%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
	args := repeatLikeArgs("%a%", 3)
	if len(args) != 3 || args[2] != "%a%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), true},
		{errors.New("UNIQUE constraint failed: orders.order_no"), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "idx_orders_order_no" (SQLSTATE 23505)`), true},
		{errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("IsUniqueViolation(%v) want %v got %v", tc.err, tc.want, got)
		}
	}
}
