package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var ErrEmptyCatalog = errors.New("catalog tables are empty")

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

func (c PostgresConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type roleSkillRow struct {
	bun.BaseModel `bun:"table:catalog_role_skills,alias:rs"`

	Role     string `bun:"role,notnull"`
	Skill    string `bun:"skill,notnull"`
	Position int    `bun:"position,notnull"`
}

type jobRow struct {
	bun.BaseModel `bun:"table:catalog_jobs,alias:j"`

	ID           int64    `bun:"id,pk,autoincrement"`
	Title        string   `bun:"title,notnull"`
	Company      string   `bun:"company,notnull"`
	Location     string   `bun:"location,notnull"`
	Requirements []string `bun:"requirements,array"`
}

type courseRow struct {
	bun.BaseModel `bun:"table:catalog_courses,alias:c"`

	Skill    string `bun:"skill,notnull"`
	Title    string `bun:"title,notnull"`
	Platform string `bun:"platform,notnull"`
	Link     string `bun:"link,notnull"`
	Position int    `bun:"position,notnull"`
}

func OpenPostgres(cfg PostgresConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: catalog dsn is required", contractx.ErrConfiguration)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// LoadPostgres reads the three catalog tables once and freezes them into a
// Store. Row order is taken from the position columns and primary key.
func LoadPostgres(ctx context.Context, db bun.IDB) (*Store, error) {
	var roles []roleSkillRow
	if err := db.NewSelect().Model(&roles).OrderExpr("rs.role ASC, rs.position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select role skills: %w", err)
	}

	var jobs []jobRow
	if err := db.NewSelect().Model(&jobs).OrderExpr("j.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}

	var courses []courseRow
	if err := db.NewSelect().Model(&courses).OrderExpr("c.position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}

	return fromRows(roles, jobs, courses)
}

func fromRows(roleRows []roleSkillRow, jobRows []jobRow, courseRows []courseRow) (*Store, error) {
	if len(roleRows) == 0 && len(jobRows) == 0 && len(courseRows) == 0 {
		return nil, ErrEmptyCatalog
	}

	var roles []Role
	roleIdx := make(map[string]int)
	for _, r := range roleRows {
		key := normalizeKey(r.Role)
		if key == "" || strings.TrimSpace(r.Skill) == "" {
			continue
		}
		i, ok := roleIdx[key]
		if !ok {
			i = len(roles)
			roleIdx[key] = i
			roles = append(roles, Role{Name: strings.TrimSpace(r.Role)})
		}
		roles[i].Skills = append(roles[i].Skills, strings.TrimSpace(r.Skill))
	}

	jobs := make([]contractx.JobListing, 0, len(jobRows))
	for _, j := range jobRows {
		jobs = append(jobs, contractx.JobListing{
			Title:        j.Title,
			Company:      j.Company,
			Location:     j.Location,
			Requirements: j.Requirements,
		})
	}

	var courses []SkillCourses
	courseIdx := make(map[string]int)
	for _, c := range courseRows {
		key := normalizeKey(c.Skill)
		if key == "" {
			continue
		}
		i, ok := courseIdx[key]
		if !ok {
			i = len(courses)
			courseIdx[key] = i
			courses = append(courses, SkillCourses{Skill: strings.TrimSpace(c.Skill)})
		}
		courses[i].Courses = append(courses[i].Courses, Course{
			Title:    c.Title,
			Platform: c.Platform,
			Link:     c.Link,
		})
	}

	return New(roles, jobs, courses), nil
}
