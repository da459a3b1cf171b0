package session

import (
	"testing"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

func TestValidateAttendance(t *testing.T) {
	t.Parallel()

	ok := []player.Ref{player.PlayerRef("p1"), player.GuestRef("Budi"), player.GuestRef("Sari")}
	if err := ValidateAttendance(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := []player.Ref{player.GuestRef("Budi"), player.GuestRef("budi")}
	if err := ValidateAttendance(dup); err == nil {
		t.Fatalf("expected duplicate guest to be rejected")
	}
}

func TestSeasonRange(t *testing.T) {
	t.Parallel()

	start, end := SeasonRange(2025)
	s := Session{ID: "s1", Date: time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)}
	if s.Date.Before(start) || !s.Date.Before(end) {
		t.Fatalf("session should be inside %v..%v", start, end)
	}
	if s.Year() != 2025 {
		t.Fatalf("unexpected year %d", s.Year())
	}
}
