package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/directionwise/internal/types"
)

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return s, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const pgUserColumns = `id, uid, email, password_hash, full_name, created_at, last_login, is_active`

func scanPgUser(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	if err := row.Scan(&u.ID, &u.UID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt, &u.LastLogin, &u.IsActive); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, fullName, email, passwordHash string) (*types.User, error) {
	u, err := scanPgUser(s.pool.QueryRow(ctx,
		`INSERT INTO users (uid, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+pgUserColumns,
		uuid.New(), email, passwordHash, fullName,
	))
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u.User, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	u, err := scanPgUser(s.pool.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	u, err := scanPgUser(s.pool.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u.User, nil
}

func (s *PostgresStore) GetUserByUID(ctx context.Context, uid uuid.UUID) (*types.User, error) {
	u, err := scanPgUser(s.pool.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE uid = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u.User, nil
}

func (s *PostgresStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

const pgCareerColumns = `c.id, c.name, c.field, c.description, c.avg_salary, c.growth_rate, c.level, c.created_at`

func (s *PostgresStore) queryCareers(ctx context.Context, query string, args ...any) ([]types.Career, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	careers := make([]types.Career, 0)
	for rows.Next() {
		var c types.Career
		if err := rows.Scan(&c.ID, &c.Name, &c.Field, &c.Description, &c.AvgSalary, &c.GrowthRate, &c.Level, &c.CreatedAt); err != nil {
			return nil, err
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}

func (s *PostgresStore) ListCareers(ctx context.Context) ([]types.Career, error) {
	careers, err := s.queryCareers(ctx, `SELECT `+pgCareerColumns+` FROM careers c ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	return careers, nil
}

func (s *PostgresStore) CountCareers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM careers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count careers: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) GetCareerByName(ctx context.Context, name string) (*types.Career, error) {
	careers, err := s.queryCareers(ctx, `SELECT `+pgCareerColumns+` FROM careers c WHERE c.name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get career: %w", err)
	}
	if len(careers) == 0 {
		return nil, nil
	}
	return &careers[0], nil
}

func (s *PostgresStore) RandomCareers(ctx context.Context, k int) ([]types.Career, error) {
	if k <= 0 {
		return []types.Career{}, nil
	}
	careers, err := s.queryCareers(ctx, `SELECT `+pgCareerColumns+` FROM careers c ORDER BY random() LIMIT $1`, k)
	if err != nil {
		return nil, fmt.Errorf("failed to sample careers: %w", err)
	}
	return careers, nil
}

func (s *PostgresStore) querySkills(ctx context.Context, query string, args ...any) ([]types.Skill, error) {
	rows, err := s.pool.Query(ctx, query, args...)
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

func (s *PostgresStore) CareerSkills(ctx context.Context, careerName string) ([]types.Skill, error) {
	skills, err := s.querySkills(ctx,
		`SELECT sk.id, sk.name, sk.category
		 FROM skills sk
		 JOIN career_skill cs ON cs.skill_id = sk.id
		 JOIN careers c ON c.id = cs.career_id
		 WHERE c.name = $1
		 ORDER BY cs.importance DESC, sk.name`, careerName)
	if err != nil {
		return nil, fmt.Errorf("failed to list career skills: %w", err)
	}
	return skills, nil
}

func (s *PostgresStore) ListSkills(ctx context.Context) ([]types.Skill, error) {
	skills, err := s.querySkills(ctx, `SELECT id, name, category FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (s *PostgresStore) CareerTrendSeries(ctx context.Context, careerName string) ([]types.TrendPoint, error) {
	query := `SELECT t.id, t.career_id, t.date, t.demand_index, t.salary_index FROM market_trends t`
	var args []any
	if careerName != "" {
		query += ` JOIN careers c ON c.id = t.career_id WHERE c.name = $1`
		args = append(args, careerName)
	}
	query += ` ORDER BY t.date, t.career_id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load trend series: %w", err)
	}
	defer rows.Close()

	points := make([]types.TrendPoint, 0)
	for rows.Next() {
		var p types.TrendPoint
		if err := rows.Scan(&p.ID, &p.CareerID, &p.Date, &p.DemandIndex, &p.SalaryIndex); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// SeedIfEmpty writes the starter catalog when the careers table is empty.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize concurrent seeders.
	if _, err := tx.Exec(ctx, `LOCK TABLE careers IN EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("failed to lock careers: %w", err)
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM careers`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count careers: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	now := time.Now()
	careerIDs := make(map[string]int64, len(starterCareers))
	for _, c := range starterCareers {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO careers (name, field, description, avg_salary, growth_rate)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.Name, c.Field, c.Description, c.AvgSalary, c.GrowthRate).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("failed to seed career %s: %w", c.Name, err)
		}
		careerIDs[c.Name] = id

		batch := &pgx.Batch{}
		for _, p := range trendSeries(c, now) {
			batch.Queue(`INSERT INTO market_trends (career_id, date, demand_index, salary_index) VALUES ($1, $2, $3, $4)`,
				id, p.Date, p.DemandIndex, p.SalaryIndex)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return false, fmt.Errorf("failed to seed trend for %s: %w", c.Name, err)
		}
	}

	skillIDs := make(map[string]int64, len(starterSkills))
	for _, sk := range starterSkills {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO skills (name, category) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category
			 RETURNING id`, sk.Name, sk.Category).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("failed to seed skill %s: %w", sk.Name, err)
		}
		skillIDs[sk.Name] = id
	}

	for career, links := range starterLinks {
		for _, l := range links {
			if _, err := tx.Exec(ctx,
				`INSERT INTO career_skill (career_id, skill_id, importance) VALUES ($1, $2, $3)`,
				careerIDs[career], skillIDs[l.skill], l.importance); err != nil {
				return false, fmt.Errorf("failed to link %s to %s: %w", career, l.skill, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *types.Assessment) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO assessments (user_id, assessment_type, answers, results)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		a.UserID, a.AssessmentType, []byte(rawOrNull(a.Answers)), []byte(rawOrNull(a.Results))).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save assessment: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, userID int64) ([]types.Assessment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, assessment_type, answers, results, created_at
		 FROM assessments WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	out := make([]types.Assessment, 0)
	for rows.Next() {
		var (
			a                types.Assessment
			answers, results []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssessmentType, &answers, &results, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a.Answers = json.RawMessage(answers)
		a.Results = json.RawMessage(results)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RecordInteraction(ctx context.Context, i *types.Interaction) (int64, error) {
	var data []byte
	if len(i.Data) > 0 {
		data = i.Data
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO interactions (user_id, interaction_type, content, interaction_data)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		i.UserID, i.InteractionType, i.Content, data).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record interaction: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListInteractions(ctx context.Context, userID int64, interactionType string) ([]types.Interaction, error) {
	query := `SELECT id, user_id, interaction_type, content, interaction_data, created_at
		FROM interactions WHERE user_id = $1`
	args := []any{userID}
	if interactionType != "" {
		query += ` AND interaction_type = $2`
		args = append(args, interactionType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	out := make([]types.Interaction, 0)
	for rows.Next() {
		var (
			it   types.Interaction
			data []byte
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.InteractionType, &it.Content, &data, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		if len(data) > 0 {
			it.Data = json.RawMessage(data)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
