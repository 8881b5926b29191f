package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Endpoints: the configured upstream sources, one row per key
CREATE TABLE IF NOT EXISTS endpoints (
    endpoint_id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT NOT NULL UNIQUE,
    url TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Endpoint accesses: every fetch attempt tracked
CREATE TABLE IF NOT EXISTS endpoint_accesses (
    access_id INTEGER PRIMARY KEY AUTOINCREMENT,
    endpoint_key TEXT NOT NULL,
    accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    status_code INTEGER,
    outcome TEXT,                -- decoded, undecodable, unauthorized
    success BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accesses_key ON endpoint_accesses(endpoint_key);
CREATE INDEX IF NOT EXISTS idx_accesses_time ON endpoint_accesses(accessed_at);

-- Cycles: one row per refresh
CREATE TABLE IF NOT EXISTS cycles (
    cycle_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    endpoint_count INTEGER NOT NULL,
    decoded_count INTEGER DEFAULT 0,
    fallback_count INTEGER DEFAULT 0,
    unauthorized BOOLEAN DEFAULT 0,
    report_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_cycles_created ON cycles(created_at DESC);

-- Slots: per-cycle slot confidence and metric value
CREATE TABLE IF NOT EXISTS slots (
    slot_id INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    confidence TEXT NOT NULL,    -- exact, inferred, fallback
    value REAL,                  -- metric slots only
    FOREIGN KEY (cycle_id) REFERENCES cycles(cycle_id) ON DELETE CASCADE,
    UNIQUE(cycle_id, name)
);

CREATE INDEX IF NOT EXISTS idx_slots_cycle ON slots(cycle_id);
CREATE INDEX IF NOT EXISTS idx_slots_confidence ON slots(confidence);

-- Content records: normalized template and generated-content rows per cycle
CREATE TABLE IF NOT EXISTS content_records (
    record_id INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle_id INTEGER NOT NULL,
    slot TEXT NOT NULL,
    source_id TEXT NOT NULL,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    created_at_raw TEXT,
    created_at TIMESTAMP,
    uses INTEGER DEFAULT 0,
    language TEXT,
    FOREIGN KEY (cycle_id) REFERENCES cycles(cycle_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_content_cycle ON content_records(cycle_id);
CREATE INDEX IF NOT EXISTS idx_content_slot ON content_records(slot);
CREATE INDEX IF NOT EXISTS idx_content_type ON content_records(type);

-- Users: deduplicated across cycles, earliest sighting wins
CREATE TABLE IF NOT EXISTS users (
    user_key TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    first_seen TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_first_seen ON users(first_seen);
`
