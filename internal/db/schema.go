package db

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		uid           TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		last_login    TEXT,
		is_active     INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS careers (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		field       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		avg_salary  REAL NOT NULL DEFAULT 0,
		growth_rate REAL NOT NULL DEFAULT 0,
		level       TEXT NOT NULL DEFAULT 'entry',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT 'general'
	)`,
	`CREATE TABLE IF NOT EXISTS career_skill (
		career_id  INTEGER NOT NULL REFERENCES careers(id),
		skill_id   INTEGER NOT NULL REFERENCES skills(id),
		importance REAL NOT NULL DEFAULT 0.5,
		PRIMARY KEY (career_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS market_trends (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		career_id    INTEGER NOT NULL REFERENCES careers(id),
		date         TEXT NOT NULL,
		demand_index REAL NOT NULL,
		salary_index REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id         INTEGER NOT NULL REFERENCES users(id),
		assessment_type TEXT NOT NULL,
		answers         TEXT NOT NULL,
		results         TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS interactions (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id          INTEGER NOT NULL REFERENCES users(id),
		interaction_type TEXT NOT NULL,
		content          TEXT NOT NULL DEFAULT '',
		interaction_data TEXT,
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_market_trends_career ON market_trends(career_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, interaction_type)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		uid           UUID NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login    TIMESTAMPTZ,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS careers (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		field       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		avg_salary  DOUBLE PRECISION NOT NULL DEFAULT 0,
		growth_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		level       TEXT NOT NULL DEFAULT 'entry',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT 'general'
	)`,
	`CREATE TABLE IF NOT EXISTS career_skill (
		career_id  BIGINT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		skill_id   BIGINT NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
		importance DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		PRIMARY KEY (career_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS market_trends (
		id           BIGSERIAL PRIMARY KEY,
		career_id    BIGINT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		date         DATE NOT NULL,
		demand_index DOUBLE PRECISION NOT NULL,
		salary_index DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		assessment_type TEXT NOT NULL,
		answers         JSONB NOT NULL,
		results         JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS interactions (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		interaction_type TEXT NOT NULL,
		content          TEXT NOT NULL DEFAULT '',
		interaction_data JSONB,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_market_trends_career ON market_trends(career_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, interaction_type)`,
}
