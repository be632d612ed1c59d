package repository

import (
	"strings"
	"testing"
)

func TestBuildSearchConditionSQLite(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"title", "excerpt", "tags"})
	if argCount != 3 {
		t.Fatalf("arg count want 3 got %d", argCount)
	}
	if condition != "title LIKE ? OR excerpt LIKE ? OR tags LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildSearchConditionPostgresUsesILIKE(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("postgres", []string{"title", "excerpt"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "title ILIKE ?") {
		t.Fatalf("condition should use ILIKE on postgres, got %s", condition)
	}
}

func TestBuildSearchConditionSkipsBlankColumns(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"title", " ", ""})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "title LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
