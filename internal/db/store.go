// Package db provides relational storage for users, the career catalog,
// market trends, assessments and interactions. SQLite is the default
// backend; PostgreSQL is used when the URL asks for it.
package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/directionwise/internal/types"
)

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// UserRecord is a user together with the stored password hash.
type UserRecord struct {
	types.User
	PasswordHash string `json:"-"`
}

// Store is the persistence contract shared by both backends.
// Lookups return nil, nil when nothing matches.
type Store interface {
	CreateUser(ctx context.Context, fullName, email, passwordHash string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetUserByID(ctx context.Context, id int64) (*types.User, error)
	GetUserByUID(ctx context.Context, uid uuid.UUID) (*types.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id int64) error

	ListCareers(ctx context.Context) ([]types.Career, error)
	CountCareers(ctx context.Context) (int, error)
	GetCareerByName(ctx context.Context, name string) (*types.Career, error)
	CareerSkills(ctx context.Context, careerName string) ([]types.Skill, error)
	ListSkills(ctx context.Context) ([]types.Skill, error)
	RandomCareers(ctx context.Context, k int) ([]types.Career, error)
	CareerTrendSeries(ctx context.Context, careerName string) ([]types.TrendPoint, error)
	SeedIfEmpty(ctx context.Context) (bool, error)

	SaveAssessment(ctx context.Context, a *types.Assessment) (int64, error)
	ListAssessments(ctx context.Context, userID int64) ([]types.Assessment, error)
	RecordInteraction(ctx context.Context, i *types.Interaction) (int64, error)
	ListInteractions(ctx context.Context, userID int64, interactionType string) ([]types.Interaction, error)

	Close() error
}

// DefaultPath is the SQLite database used when no URL is configured.
const DefaultPath = "directionwise.db"

// Open connects to the database named by url. postgres:// and
// postgresql:// URLs use PostgreSQL; anything else is a SQLite path,
// optionally prefixed with sqlite://.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return ConnectPostgres(ctx, url)
	case url == "":
		return OpenSQLite(ctx, DefaultPath)
	default:
		return OpenSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
	}
}
