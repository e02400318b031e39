package store

var catalogSchema = []string{
	`CREATE TABLE IF NOT EXISTS colleges (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL UNIQUE,
		state TEXT NOT NULL DEFAULT '',
		type  TEXT NOT NULL DEFAULT '',
		city  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		college_id  INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
		course_name TEXT NOT NULL,
		seats       INTEGER NOT NULL DEFAULT 0,
		UNIQUE (college_id, course_name)
	)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS colleges_fts USING fts5(
		name, state, city,
		content='colleges', content_rowid='id'
	)`,
	`CREATE TRIGGER IF NOT EXISTS colleges_ai AFTER INSERT ON colleges BEGIN
		INSERT INTO colleges_fts(rowid, name, state, city) VALUES (new.id, new.name, new.state, new.city);
	END`,
	`CREATE TRIGGER IF NOT EXISTS colleges_ad AFTER DELETE ON colleges BEGIN
		INSERT INTO colleges_fts(colleges_fts, rowid, name, state, city) VALUES ('delete', old.id, old.name, old.state, old.city);
	END`,
	`CREATE TRIGGER IF NOT EXISTS colleges_au AFTER UPDATE ON colleges BEGIN
		INSERT INTO colleges_fts(colleges_fts, rowid, name, state, city) VALUES ('delete', old.id, old.name, old.state, old.city);
		INSERT INTO colleges_fts(rowid, name, state, city) VALUES (new.id, new.name, new.state, new.city);
	END`,
}

var cutoffSchema = []string{
	`CREATE TABLE IF NOT EXISTS cutoff_ranks (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		college_id       INTEGER NOT NULL,
		course_id        INTEGER NOT NULL,
		college_name     TEXT NOT NULL,
		course_name      TEXT NOT NULL,
		source_category  TEXT NOT NULL DEFAULT '',
		counselling_type TEXT NOT NULL,
		counselling_year INTEGER NOT NULL,
		round_number     INTEGER NOT NULL,
		quota_type       TEXT NOT NULL,
		category         TEXT NOT NULL,
		raw_quota        TEXT NOT NULL DEFAULT '',
		raw_category     TEXT NOT NULL DEFAULT '',
		cutoff_rank      INTEGER NOT NULL CHECK (cutoff_rank > 0),
		percentile       REAL,
		seats_available  INTEGER NOT NULL DEFAULT 0,
		seats_filled     INTEGER NOT NULL DEFAULT 0,
		fees             REAL,
		state            TEXT NOT NULL DEFAULT '',
		source_filename  TEXT NOT NULL,
		source_sheet     TEXT NOT NULL DEFAULT '',
		source_row       INTEGER NOT NULL DEFAULT 0,
		UNIQUE (college_id, course_id, counselling_type, counselling_year, round_number, quota_type, category)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cutoff_ranks_source ON cutoff_ranks(source_filename)`,
	`CREATE INDEX IF NOT EXISTS idx_cutoff_ranks_session ON cutoff_ranks(counselling_year, round_number, source_category)`,
	`CREATE TABLE IF NOT EXISTS import_runs (
		run_id          TEXT NOT NULL,
		source_filename TEXT NOT NULL,
		started_at      TEXT NOT NULL,
		finished_at     TEXT NOT NULL,
		rows_in         INTEGER NOT NULL DEFAULT 0,
		rows_written    INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL,
		error           TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, source_filename)
	)`,
}
