package querybuilder

import (
	"errors"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("role", "ADMIN"), IsNull("deleted_at"), InStrings("id", []string{"p1", "p2"})).
		OrderBy("name", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE role = $1 AND deleted_at IS NULL AND id IN ($2, $3) ORDER BY name, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "ADMIN" || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("matches").Where(InStrings("session_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM matches WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query: %s %+v", query, args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		internal string
		Skip     string `db:"-"`
	}

	query, args, err := InsertModels("players", []any{row{ID: "p1", Name: "a"}, &row{ID: "p2", Name: "b"}}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "b" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_SetAllowed(t *testing.T) {
	allow := Allow("name", "role")

	query, args, err := Update("players").
		SetAllowed(allow, "name", "Raka").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "p1"), Expr("version < ?", 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET name = $1, updated_at = NOW() WHERE id = $2 AND version < $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "Raka" || args[2] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}

	_, _, err = Update("players").
		SetAllowed(allow, "name", "x").
		SetAllowed(allow, "skill_shooting", 99).
		Where(Eq("id", "p1")).
		ToSQL()
	if !errors.Is(err, ErrColumnNotAllowed) {
		t.Fatalf("expected ErrColumnNotAllowed, got %v", err)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_events").Where(Eq("id", "e1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM match_events WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query: %s %+v", query, args)
	}

	if _, _, err := DeleteFrom("match_events").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to fail")
	}
}
