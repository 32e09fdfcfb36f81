package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplySchema creates all tables and indexes. Safe to call on every startup,
// everything uses IF NOT EXISTS.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schema = `
-- Guest users
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Voting rooms
CREATE TABLE IF NOT EXISTS rooms (
    room_id TEXT PRIMARY KEY,
    code CHAR(5) NOT NULL UNIQUE,
    creator_id TEXT NOT NULL REFERENCES users(user_id),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'archived')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_rooms_code ON rooms(code);

CREATE TABLE IF NOT EXISTS room_participants (
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(user_id),
    username TEXT NOT NULL,
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (room_id, user_id)
);

-- Photo references. The binary never lands here; only the locator and an
-- optional thumbnail link. (room_id, source_kind, locator) is the dedup key.
CREATE TABLE IF NOT EXISTS photos (
    photo_id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    source_kind TEXT NOT NULL CHECK (source_kind IN ('local', 'remote', 'uploaded')),
    locator TEXT NOT NULL,
    filename TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    ordering_index INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (room_id, source_kind, locator)
);

CREATE INDEX IF NOT EXISTS idx_photos_room_order ON photos(room_id, ordering_index);

-- Room-scoped ordering counter. Incremented with an atomic upsert so two
-- server instances importing into the same room never hand out the same index.
CREATE TABLE IF NOT EXISTS room_counters (
    room_id TEXT PRIMARY KEY REFERENCES rooms(room_id) ON DELETE CASCADE,
    next_index INT NOT NULL DEFAULT 0
);

-- Votes: at most one per (room, photo, user); re-votes overwrite in place.
CREATE TABLE IF NOT EXISTS votes (
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    photo_id TEXT NOT NULL REFERENCES photos(photo_id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    score SMALLINT NOT NULL CHECK (score IN (-3, -2, -1, 1, 2, 3)),
    voted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (room_id, photo_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_room_photo ON votes(room_id, photo_id);
CREATE INDEX IF NOT EXISTS idx_votes_room_user ON votes(room_id, user_id);

-- Single-level undo marker: the one vote per (room, user) that UndoLast
-- would remove. Cleared by undo, replaced by every cast.
CREATE TABLE IF NOT EXISTS last_actions (
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    photo_id TEXT NOT NULL,
    acted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (room_id, user_id)
);

-- Import jobs. The partial unique index enforces at most one live job per room.
CREATE TABLE IF NOT EXISTS import_jobs (
    job_id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    source_kind TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'processing', 'completed', 'failed')),
    total INT NOT NULL DEFAULT 0,
    processed INT NOT NULL DEFAULT 0,
    failed INT NOT NULL DEFAULT 0,
    last_error TEXT,
    started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    finished_at TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_import_jobs_one_active
    ON import_jobs(room_id) WHERE status IN ('pending', 'processing');
CREATE INDEX IF NOT EXISTS idx_import_jobs_room ON import_jobs(room_id);

-- Export jobs
CREATE TABLE IF NOT EXISTS export_jobs (
    job_id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
    top_n INT NOT NULL,
    destination_type TEXT NOT NULL,
    destination_path TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
