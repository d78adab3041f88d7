package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrEmptySkill = errors.New("skill is empty")

// Profile holds the seed values a SessionContext is built from. It is plain
// configuration; nothing downstream of the runner ever sees it.
type Profile struct {
	Skills     []string `envconfig:"USER_SKILLS" default:"Python,SQL"`
	Location   string   `envconfig:"USER_LOCATION" default:"New York"`
	CareerGoal string   `envconfig:"CAREER_GOAL" default:"Become a Data Scientist"`
}

// SessionContext is the per-query view of the user. Fields are unexported so
// a context cannot be mutated after construction; accessors hand out copies.
type SessionContext struct {
	skills     []string
	location   string
	careerGoal string
}

// NewSessionContext copies skills into an ordered set: first occurrence wins,
// surrounding whitespace is trimmed and duplicates are dropped.
func NewSessionContext(skills []string, location, careerGoal string) (SessionContext, error) {
	set := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			return SessionContext{}, ErrEmptySkill
		}
		if slices.Contains(set, s) {
			continue
		}
		set = append(set, s)
	}

	return SessionContext{
		skills:     set,
		location:   strings.TrimSpace(location),
		careerGoal: strings.TrimSpace(careerGoal),
	}, nil
}

// FromProfile builds a fresh context; calling it twice yields two contexts
// that share no backing storage.
func FromProfile(p Profile) (SessionContext, error) {
	sc, err := NewSessionContext(p.Skills, p.Location, p.CareerGoal)
	if err != nil {
		return SessionContext{}, fmt.Errorf("build session context: %w", err)
	}
	return sc, nil
}

func (c SessionContext) Skills() []string {
	return slices.Clone(c.skills)
}

func (c SessionContext) Location() string {
	return c.location
}

func (c SessionContext) CareerGoal() string {
	return c.careerGoal
}

func (c SessionContext) Validate() error {
	for _, s := range c.skills {
		if strings.TrimSpace(s) == "" {
			return ErrEmptySkill
		}
	}
	return nil
}

type sessionContextJSON struct {
	Skills     []string `json:"skills"`
	Location   string   `json:"location"`
	CareerGoal string   `json:"career_goal"`
}

func (c SessionContext) MarshalJSON() ([]byte, error) {
	skills := c.skills
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(sessionContextJSON{
		Skills:     skills,
		Location:   c.location,
		CareerGoal: c.careerGoal,
	})
}
