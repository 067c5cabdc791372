package store

const releasesTable = "releases"

// Schema v1 - release catalog.
// Column order matches the dump: timestamp, hash, topic, post, author,
// title, description, size, category.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS releases (
  timestamp DATETIME,
  hash TEXT NOT NULL,
  topic_id INTEGER,
  post_id INTEGER,
  author TEXT,
  title TEXT,
  description TEXT,
  size INTEGER NOT NULL DEFAULT 0 CHECK (size >= 0),
  category INTEGER
);
`

// Schema v2 - index used by ORDER BY title
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_releases_title ON releases(title);
`
