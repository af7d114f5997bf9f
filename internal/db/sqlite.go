package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/directionwise/internal/types"
)

const (
	sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00" // fixed width so text order is time order
	sqliteDateFormat = "2006-01-02"
)

// SQLiteStore is the embedded single-file backend.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) stamp() string {
	return s.now().UTC().Format(sqliteTimeFormat)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(sqliteTimeFormat, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ---- users ----

const sqliteUserColumns = `id, uid, email, password_hash, full_name, created_at, last_login, is_active`

func scanSQLiteUser(row interface{ Scan(...any) error }) (*UserRecord, error) {
	var (
		u         UserRecord
		uid       string
		createdAt string
		lastLogin sql.NullString
		active    int
	)
	if err := row.Scan(&u.ID, &uid, &u.Email, &u.PasswordHash, &u.FullName, &createdAt, &lastLogin, &active); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(uid)
	if err != nil {
		return nil, fmt.Errorf("invalid stored uid %q: %w", uid, err)
	}
	u.UID = parsed
	u.CreatedAt = parseTime(createdAt)
	if lastLogin.Valid {
		t := parseTime(lastLogin.String)
		u.LastLogin = &t
	}
	u.IsActive = active != 0
	return &u, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, fullName, email, passwordHash string) (*types.User, error) {
	uid := uuid.New()
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO users (uid, email, password_hash, full_name, created_at, is_active)
		 VALUES (?, ?, ?, ?, ?, 1)
		 RETURNING `+sqliteUserColumns,
		uid.String(), email, passwordHash, fullName, s.stamp(),
	)
	u, err := scanSQLiteUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u.User, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	u, err := scanSQLiteUser(s.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	u, err := scanSQLiteUser(s.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u.User, nil
}

func (s *SQLiteStore) GetUserByUID(ctx context.Context, uid uuid.UUID) (*types.User, error) {
	u, err := scanSQLiteUser(s.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserColumns+` FROM users WHERE uid = ?`, uid.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u.User, nil
}

func (s *SQLiteStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, s.stamp(), id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// ---- careers ----

const sqliteCareerColumns = `c.id, c.name, c.field, c.description, c.avg_salary, c.growth_rate, c.level, c.created_at`

func scanSQLiteCareer(row interface{ Scan(...any) error }) (types.Career, error) {
	var (
		c         types.Career
		createdAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Field, &c.Description, &c.AvgSalary, &c.GrowthRate, &c.Level, &createdAt)
	c.CreatedAt = parseTime(createdAt)
	return c, err
}

func (s *SQLiteStore) queryCareers(ctx context.Context, query string, args ...any) ([]types.Career, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	careers := make([]types.Career, 0)
	for rows.Next() {
		c, err := scanSQLiteCareer(rows)
		if err != nil {
			return nil, err
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}

func (s *SQLiteStore) ListCareers(ctx context.Context) ([]types.Career, error) {
	careers, err := s.queryCareers(ctx, `SELECT `+sqliteCareerColumns+` FROM careers c ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	return careers, nil
}

func (s *SQLiteStore) CountCareers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM careers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count careers: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) GetCareerByName(ctx context.Context, name string) (*types.Career, error) {
	c, err := scanSQLiteCareer(s.db.QueryRowContext(ctx,
		`SELECT `+sqliteCareerColumns+` FROM careers c WHERE c.name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get career: %w", err)
	}
	return &c, nil
}

func (s *SQLiteStore) RandomCareers(ctx context.Context, k int) ([]types.Career, error) {
	if k <= 0 {
		return []types.Career{}, nil
	}
	careers, err := s.queryCareers(ctx,
		`SELECT `+sqliteCareerColumns+` FROM careers c ORDER BY RANDOM() LIMIT ?`, k)
	if err != nil {
		return nil, fmt.Errorf("failed to sample careers: %w", err)
	}
	return careers, nil
}

func (s *SQLiteStore) querySkills(ctx context.Context, query string, args ...any) ([]types.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]types.Skill, 0)
	for rows.Next() {
		var sk types.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *SQLiteStore) CareerSkills(ctx context.Context, careerName string) ([]types.Skill, error) {
	skills, err := s.querySkills(ctx,
		`SELECT sk.id, sk.name, sk.category
		 FROM skills sk
		 JOIN career_skill cs ON cs.skill_id = sk.id
		 JOIN careers c ON c.id = cs.career_id
		 WHERE c.name = ?
		 ORDER BY cs.importance DESC, sk.name`, careerName)
	if err != nil {
		return nil, fmt.Errorf("failed to list career skills: %w", err)
	}
	return skills, nil
}

func (s *SQLiteStore) ListSkills(ctx context.Context) ([]types.Skill, error) {
	skills, err := s.querySkills(ctx, `SELECT id, name, category FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (s *SQLiteStore) CareerTrendSeries(ctx context.Context, careerName string) ([]types.TrendPoint, error) {
	query := `SELECT t.id, t.career_id, t.date, t.demand_index, t.salary_index FROM market_trends t`
	var args []any
	if careerName != "" {
		query += ` JOIN careers c ON c.id = t.career_id WHERE c.name = ?`
		args = append(args, careerName)
	}
	query += ` ORDER BY t.date, t.career_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load trend series: %w", err)
	}
	defer rows.Close()

	points := make([]types.TrendPoint, 0)
	for rows.Next() {
		var (
			p    types.TrendPoint
			date string
		)
		if err := rows.Scan(&p.ID, &p.CareerID, &date, &p.DemandIndex, &p.SalaryIndex); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		p.Date, _ = time.Parse(sqliteDateFormat, date)
		points = append(points, p)
	}
	return points, rows.Err()
}

// SeedIfEmpty writes the starter catalog when the careers table is empty.
// It reports whether anything was written.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM careers`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count careers: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	now := s.now()
	careerIDs := make(map[string]int64, len(starterCareers))
	for _, c := range starterCareers {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO careers (name, field, description, avg_salary, growth_rate, level, created_at)
			 VALUES (?, ?, ?, ?, ?, 'entry', ?)`,
			c.Name, c.Field, c.Description, c.AvgSalary, c.GrowthRate, now.UTC().Format(sqliteTimeFormat))
		if err != nil {
			return false, fmt.Errorf("failed to seed career %s: %w", c.Name, err)
		}
		if careerIDs[c.Name], err = res.LastInsertId(); err != nil {
			return false, err
		}
		for _, p := range trendSeries(c, now) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO market_trends (career_id, date, demand_index, salary_index) VALUES (?, ?, ?, ?)`,
				careerIDs[c.Name], p.Date.Format(sqliteDateFormat), p.DemandIndex, p.SalaryIndex); err != nil {
				return false, fmt.Errorf("failed to seed trend for %s: %w", c.Name, err)
			}
		}
	}

	skillIDs := make(map[string]int64, len(starterSkills))
	for _, sk := range starterSkills {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skills (name, category) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
			sk.Name, sk.Category); err != nil {
			return false, fmt.Errorf("failed to seed skill %s: %w", sk.Name, err)
		}
		var id int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM skills WHERE name = ?`, sk.Name).Scan(&id); err != nil {
			return false, err
		}
		skillIDs[sk.Name] = id
	}

	for career, links := range starterLinks {
		for _, l := range links {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO career_skill (career_id, skill_id, importance) VALUES (?, ?, ?)`,
				careerIDs[career], skillIDs[l.skill], l.importance); err != nil {
				return false, fmt.Errorf("failed to link %s to %s: %w", career, l.skill, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

// ---- assessments and interactions ----

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *types.Assessment) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (user_id, assessment_type, answers, results, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.AssessmentType, string(rawOrNull(a.Answers)), string(rawOrNull(a.Results)), s.stamp())
	if err != nil {
		return 0, fmt.Errorf("failed to save assessment: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, userID int64) ([]types.Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, assessment_type, answers, results, created_at
		 FROM assessments WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	out := make([]types.Assessment, 0)
	for rows.Next() {
		var (
			a                         types.Assessment
			answers, results, created string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssessmentType, &answers, &results, &created); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a.Answers = json.RawMessage(answers)
		a.Results = json.RawMessage(results)
		a.CreatedAt = parseTime(created)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RecordInteraction(ctx context.Context, i *types.Interaction) (int64, error) {
	var data sql.NullString
	if len(i.Data) > 0 {
		data = sql.NullString{String: string(i.Data), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (user_id, interaction_type, content, interaction_data, created_at) VALUES (?, ?, ?, ?, ?)`,
		i.UserID, i.InteractionType, i.Content, data, s.stamp())
	if err != nil {
		return 0, fmt.Errorf("failed to record interaction: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) ListInteractions(ctx context.Context, userID int64, interactionType string) ([]types.Interaction, error) {
	query := `SELECT id, user_id, interaction_type, content, interaction_data, created_at
		FROM interactions WHERE user_id = ?`
	args := []any{userID}
	if interactionType != "" {
		query += ` AND interaction_type = ?`
		args = append(args, interactionType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	out := make([]types.Interaction, 0)
	for rows.Next() {
		var (
			it      types.Interaction
			data    sql.NullString
			created string
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.InteractionType, &it.Content, &data, &created); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		if data.Valid {
			it.Data = json.RawMessage(data.String)
		}
		it.CreatedAt = parseTime(created)
		out = append(out, it)
	}
	return out, rows.Err()
}

// rawOrNull keeps JSON columns valid when the caller passes nothing.
func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
