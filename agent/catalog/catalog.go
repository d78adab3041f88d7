// Package catalog holds the read-only lookup tables the career tools run
// against: role requirements, canonical job listings and courses per skill.
package catalog

import (
	"slices"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

type Role struct {
	Name   string
	Skills []string
}

type Course struct {
	Title    string
	Platform string
	Link     string
}

type SkillCourses struct {
	Skill   string
	Courses []Course
}

// Store is immutable once built. Every accessor returns a copy, so callers
// may keep or modify what they get back.
type Store struct {
	roleSkills   map[string][]string
	roleNames    []string
	jobs         []contractx.JobListing
	courses      map[string][]Course
	courseSkills []string
}

func New(roles []Role, jobs []contractx.JobListing, courses []SkillCourses) *Store {
	s := &Store{
		roleSkills: make(map[string][]string, len(roles)),
		courses:    make(map[string][]Course, len(courses)),
	}

	for _, r := range roles {
		key := normalizeKey(r.Name)
		if key == "" {
			continue
		}
		if _, ok := s.roleSkills[key]; !ok {
			s.roleNames = append(s.roleNames, strings.TrimSpace(r.Name))
		}
		s.roleSkills[key] = slices.Clone(r.Skills)
	}

	s.jobs = make([]contractx.JobListing, 0, len(jobs))
	for _, j := range jobs {
		s.jobs = append(s.jobs, cloneJob(j))
	}

	for _, c := range courses {
		key := normalizeKey(c.Skill)
		if key == "" {
			continue
		}
		if _, ok := s.courses[key]; !ok {
			s.courseSkills = append(s.courseSkills, strings.TrimSpace(c.Skill))
		}
		s.courses[key] = append(s.courses[key], c.Courses...)
	}

	return s
}

// RequiredSkills returns the skills for role in catalog order. Unknown roles
// yield an empty slice.
func (s *Store) RequiredSkills(role string) []string {
	if s == nil {
		return []string{}
	}
	skills, ok := s.roleSkills[normalizeKey(role)]
	if !ok {
		return []string{}
	}
	return slices.Clone(skills)
}

func (s *Store) Jobs() []contractx.JobListing {
	if s == nil {
		return []contractx.JobListing{}
	}
	out := make([]contractx.JobListing, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, cloneJob(j))
	}
	return out
}

func (s *Store) Courses(skill string) []Course {
	if s == nil {
		return []Course{}
	}
	courses, ok := s.courses[normalizeKey(skill)]
	if !ok {
		return []Course{}
	}
	return slices.Clone(courses)
}

// Roles lists role names in the order they were first registered.
func (s *Store) Roles() []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s.roleNames)
}

// Skills lists every skill that has at least one course, in catalog order.
func (s *Store) Skills() []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s.courseSkills)
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func cloneJob(j contractx.JobListing) contractx.JobListing {
	j.Requirements = slices.Clone(j.Requirements)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j
}
