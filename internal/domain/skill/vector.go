package skill

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Skill identifies one of the ten rated player attributes.
type Skill int

const (
	Shooting Skill = iota
	Passing
	Dribbling
	Speed
	Stamina
	Physical
	Marking
	Interception
	Positioning
	Teamwork
)

// Count is the number of rated attributes.
const Count = 10

const (
	MinValue     = 0
	MaxValue     = 100
	NeutralValue = 50
)

var ErrUnknownSkill = errors.New("unknown skill")

var names = [Count]string{
	Shooting:     "shooting",
	Passing:      "passing",
	Dribbling:    "dribbling",
	Speed:        "speed",
	Stamina:      "stamina",
	Physical:     "physical",
	Marking:      "marking",
	Interception: "interception",
	Positioning:  "positioning",
	Teamwork:     "teamwork",
}

// All lists skills in storage order.
var All = [Count]Skill{Shooting, Passing, Dribbling, Speed, Stamina, Physical, Marking, Interception, Positioning, Teamwork}

func (s Skill) String() string {
	if s < 0 || int(s) >= Count {
		return fmt.Sprintf("skill(%d)", int(s))
	}
	return names[s]
}

func Parse(name string) (Skill, error) {
	value := strings.ToLower(strings.TrimSpace(name))
	for idx, candidate := range names {
		if candidate == value {
			return Skill(idx), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
}

// Vector holds one value per skill on the canonical 0-100 scale.
type Vector [Count]int

func Neutral() Vector {
	return Uniform(NeutralValue)
}

func Uniform(value int) Vector {
	var v Vector
	for i := range v {
		v[i] = value
	}
	return v
}

// FromTenScale converts a 0-10 value to the canonical 0-100 scale.
func FromTenScale(value float64) int {
	return clamp(int(math.Round(value * 10)))
}

func (v Vector) Get(s Skill) int {
	return v[s]
}

func (v Vector) IsZero() bool {
	for _, value := range v {
		if value != 0 {
			return false
		}
	}
	return true
}

// Overall is the unweighted mean of all ten skills.
func (v Vector) Overall() float64 {
	total := 0
	for _, value := range v {
		total += value
	}
	return float64(total) / Count
}

var attackWeights = map[Skill]float64{
	Shooting:    0.35,
	Dribbling:   0.20,
	Passing:     0.15,
	Speed:       0.15,
	Positioning: 0.15,
}

var defenseWeights = map[Skill]float64{
	Marking:      0.30,
	Interception: 0.30,
	Physical:     0.15,
	Positioning:  0.15,
	Stamina:      0.10,
}

// Attack blends shooting with the attributes that create chances.
func (v Vector) Attack() float64 {
	return v.blend(attackWeights)
}

// Defense blends marking and interception with supporting attributes.
func (v Vector) Defense() float64 {
	return v.blend(defenseWeights)
}

func (v Vector) blend(weights map[Skill]float64) float64 {
	total := 0.0
	for _, s := range All {
		total += float64(v[s]) * weights[s]
	}
	return total
}

// Validate checks every value is inside the canonical range.
func (v Vector) Validate() error {
	for idx, value := range v {
		if value < MinValue || value > MaxValue {
			return fmt.Errorf("%s=%d must be between %d and %d", Skill(idx), value, MinValue, MaxValue)
		}
	}
	return nil
}

func (v Vector) ToMap() map[string]int {
	out := make(map[string]int, Count)
	for idx, value := range v {
		out[names[idx]] = value
	}
	return out
}

// FromMap builds a vector from named values; absent skills stay zero.
func FromMap(values map[string]int) (Vector, error) {
	var v Vector
	for name, value := range values {
		s, err := Parse(name)
		if err != nil {
			return Vector{}, err
		}
		v[s] = value
	}
	return v, nil
}

func clamp(value int) int {
	if value < MinValue {
		return MinValue
	}
	if value > MaxValue {
		return MaxValue
	}
	return value
}
