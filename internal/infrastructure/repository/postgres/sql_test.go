package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get session: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("pq: relation sessions does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert player: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestRefColumnsRoundTrip(t *testing.T) {
	for _, ref := range []player.Ref{player.PlayerRef("plr-001"), player.GuestRef("Budi")} {
		playerID, guest := refColumns(ref)
		if playerID.Valid == guest.Valid {
			t.Fatalf("exactly one column must be set for %+v", ref)
		}
		if got := refFromColumns(playerID, guest); got != ref {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, ref)
		}
	}
}

func TestSkillsArray(t *testing.T) {
	v := skill.Uniform(40)
	v[skill.Shooting] = 90

	got, err := skillsFromArray(skillsToArray(v))
	if err != nil {
		t.Fatalf("skills from array: %v", err)
	}
	if got != v {
		t.Fatalf("unexpected skills: %v", got)
	}

	if _, err := skillsFromArray(pq.Int64Array{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short array")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
