package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

func TestSessionService_CreateAndGet(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	date := time.Date(2025, time.March, 8, 19, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	item := c.sessionWithAttendance(t, date, seededPlayerIDs(3), "Budi")

	got, err := c.sessionService.Get(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Session.Venue != "GOR Senayan" {
		t.Fatalf("unexpected venue: %s", got.Session.Venue)
	}
	if got.Session.Date.Location() != time.UTC {
		t.Fatalf("session date must be stored in UTC, got %v", got.Session.Date.Location())
	}
	if len(got.Attendance) != 4 {
		t.Fatalf("expected 4 attendees, got %d", len(got.Attendance))
	}
	if !got.Attendance[3].IsGuest() || got.Attendance[3].GuestName != "Budi" {
		t.Fatalf("expected guest Budi last, got %+v", got.Attendance[3])
	}
}

func TestSessionService_CreateRejectsMissingDate(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	if _, err := c.sessionService.Create(t.Context(), CreateSessionInput{Venue: "GOR"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSessionService_ReplaceAttendanceValidation(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, nil)

	_, err := c.sessionService.ReplaceAttendance(t.Context(), item.ID, []player.Ref{
		player.PlayerRef("plr-001"),
		player.PlayerRef("plr-001"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate attendee, got %v", err)
	}

	_, err = c.sessionService.ReplaceAttendance(t.Context(), item.ID, []player.Ref{player.PlayerRef("ghost")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	_, err = c.sessionService.ReplaceAttendance(t.Context(), "missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}
}

func TestSessionService_SetMVPRequiresAttendance(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, []string{"plr-001", "plr-002"})

	if _, err := c.sessionService.SetMVP(t.Context(), item.ID, "plr-009"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for absent player, got %v", err)
	}

	got, err := c.sessionService.SetMVP(t.Context(), item.ID, "plr-002")
	if err != nil {
		t.Fatalf("set mvp: %v", err)
	}
	if got.Session.MVPPlayerID != "plr-002" {
		t.Fatalf("unexpected mvp: %s", got.Session.MVPPlayerID)
	}
	if !got.Effects.OK() {
		t.Fatalf("expected clean secondary effects, got %+v", got.Effects)
	}

	stored, _, _ := c.sessions.GetByID(t.Context(), item.ID)
	if stored.MVPPlayerID != "plr-002" {
		t.Fatalf("mvp not persisted: %+v", stored)
	}
}

func TestSessionService_AttendanceChangeInvalidatesSnapshot(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, []string{"plr-001"})

	if _, err := c.rankingService.Get(t.Context(), 2025); err != nil {
		t.Fatalf("get ranking: %v", err)
	}
	if _, exists, _ := c.rankings.Get(t.Context(), 2025); !exists {
		t.Fatalf("expected stored snapshot after read")
	}

	if _, err := c.sessionService.ReplaceAttendance(t.Context(), item.ID, []player.Ref{player.PlayerRef("plr-002")}); err != nil {
		t.Fatalf("replace attendance: %v", err)
	}
	if _, exists, _ := c.rankings.Get(t.Context(), 2025); exists {
		t.Fatalf("expected snapshot to be dropped after attendance change")
	}
}

func TestSessionService_InvalidationFailureKeepsMutation(t *testing.T) {
	t.Parallel()

	c := newClubWithInvalidator(t, failingInvalidator{})
	item := c.sessionWithAttendance(t, fixtureNow, nil)

	got, err := c.sessionService.ReplaceAttendance(t.Context(), item.ID, []player.Ref{player.PlayerRef("plr-003")})
	if err != nil {
		t.Fatalf("primary mutation must succeed, got %v", err)
	}
	step, ok := got.Effects.Step(StepSnapshotInvalidation)
	if !ok || step.Status != StepStatusFailed || step.Error == "" {
		t.Fatalf("expected failed invalidation step, got %+v", got.Effects)
	}

	attendance, _ := c.sessions.ListAttendance(t.Context(), item.ID)
	if len(attendance) != 1 || attendance[0].PlayerID != "plr-003" {
		t.Fatalf("attendance not persisted: %+v", attendance)
	}
}
