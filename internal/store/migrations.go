package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create conversations",
		SQL: `
			CREATE TABLE conversations (
				user_id     TEXT PRIMARY KEY,
				summary     TEXT NOT NULL DEFAULT '',
				topics      TEXT NOT NULL DEFAULT '[]',
				messages    TEXT NOT NULL DEFAULT '[]',
				updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);
		`,
	},
	{
		Version: 2,
		Name:    "create wellness data tables",
		SQL: `
			CREATE TABLE health_metrics (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id      TEXT NOT NULL,
				metric_type  TEXT NOT NULL,
				value        REAL NOT NULL,
				unit         TEXT NOT NULL DEFAULT '',
				recorded_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_metrics_user_type ON health_metrics (user_id, metric_type, recorded_at);

			CREATE TABLE goals (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id      TEXT NOT NULL,
				goal_type    TEXT NOT NULL,
				target       REAL NOT NULL,
				unit         TEXT NOT NULL DEFAULT '',
				deadline     TEXT NOT NULL DEFAULT '',
				status       TEXT NOT NULL DEFAULT 'active'
			);

			CREATE INDEX idx_goals_user ON goals (user_id, status);

			CREATE TABLE meals (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id      TEXT NOT NULL,
				plan_date    TEXT NOT NULL,
				slot         TEXT NOT NULL,
				name         TEXT NOT NULL,
				calories     INTEGER NOT NULL DEFAULT 0,
				protein_g    REAL NOT NULL DEFAULT 0,
				carbs_g      REAL NOT NULL DEFAULT 0,
				fat_g        REAL NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_meals_user_date ON meals (user_id, plan_date);

			CREATE TABLE recipes (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				name         TEXT NOT NULL,
				description  TEXT NOT NULL DEFAULT '',
				calories     INTEGER NOT NULL DEFAULT 0,
				protein_g    REAL NOT NULL DEFAULT 0,
				tags         TEXT NOT NULL DEFAULT ''
			);

			CREATE VIRTUAL TABLE recipes_fts USING fts5(
				name,
				description,
				tags,
				content='recipes',
				content_rowid='id'
			);

			CREATE TRIGGER recipes_ai AFTER INSERT ON recipes BEGIN
				INSERT INTO recipes_fts(rowid, name, description, tags)
				VALUES (new.id, new.name, new.description, new.tags);
			END;

			CREATE TRIGGER recipes_ad AFTER DELETE ON recipes BEGIN
				INSERT INTO recipes_fts(recipes_fts, rowid, name, description, tags)
				VALUES ('delete', old.id, old.name, old.description, old.tags);
			END;

			CREATE TRIGGER recipes_au AFTER UPDATE ON recipes BEGIN
				INSERT INTO recipes_fts(recipes_fts, rowid, name, description, tags)
				VALUES ('delete', old.id, old.name, old.description, old.tags);
				INSERT INTO recipes_fts(rowid, name, description, tags)
				VALUES (new.id, new.name, new.description, new.tags);
			END;
		`,
	},
}
