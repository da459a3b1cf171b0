package skill

import (
	"errors"
	"testing"
)

func TestFromTenScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int
	}{
		{in: 5, want: 50},
		{in: 0, want: 0},
		{in: 7.25, want: 73},
		{in: 12, want: 100},
		{in: -1, want: 0},
	}
	for _, tc := range tests {
		if got := FromTenScale(tc.in); got != tc.want {
			t.Fatalf("FromTenScale(%v): got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestVector_Overall(t *testing.T) {
	t.Parallel()

	v := Uniform(40)
	v[Shooting] = 90
	if got := v.Overall(); got != 45 {
		t.Fatalf("unexpected overall: %v", got)
	}
	if Neutral().Overall() != NeutralValue {
		t.Fatalf("neutral vector should average %d", NeutralValue)
	}
}

func TestVector_AttackDefenseWeights(t *testing.T) {
	t.Parallel()

	if got := Uniform(60).Attack(); got < 59.999 || got > 60.001 {
		t.Fatalf("attack weights should sum to one, got %v", got)
	}
	if got := Uniform(60).Defense(); got < 59.999 || got > 60.001 {
		t.Fatalf("defense weights should sum to one, got %v", got)
	}

	var striker Vector
	striker[Shooting] = 100
	if striker.Attack() <= striker.Defense() {
		t.Fatalf("shooting should favour attack")
	}
}

func TestMapRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := FromMap(map[string]int{"shooting": 70, "Marking": 30})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if v[Shooting] != 70 || v[Marking] != 30 || v[Speed] != 0 {
		t.Fatalf("unexpected vector: %v", v)
	}
	if got := v.ToMap()["marking"]; got != 30 {
		t.Fatalf("unexpected marking in map: %d", got)
	}

	if _, err := FromMap(map[string]int{"heading": 10}); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestVector_Validate(t *testing.T) {
	t.Parallel()

	if err := Uniform(100).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := Neutral()
	v[Teamwork] = 101
	if err := v.Validate(); err == nil {
		t.Fatalf("expected range error")
	}
}
