package vectordb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteIndex is an Index backed by a single SQLite file. Vectors are stored
// as little-endian float32 blobs and scored with a brute-force cosine scan,
// which is adequate for corpora in the tens of thousands of chunks.
type SQLiteIndex struct {
	db         *sql.DB
	collection string
	logger     *zap.Logger
}

var _ Index = (*SQLiteIndex)(nil)

// NewSQLiteIndex opens (or creates) the database at path and ensures the
// named collection exists. Reopening an existing path with the same
// collection name resumes where the previous process left off.
func NewSQLiteIndex(path, collection string, logger *zap.Logger) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open vector database: %w", err)
	}

	// The sqlite driver serializes writes badly across connections; a
	// single connection avoids SQLITE_BUSY under concurrent ingestion.
	db.SetMaxOpenConns(1)

	idx := &SQLiteIndex{
		db:         db,
		collection: collection,
		logger:     logger.Named("vectordb"),
	}
	if err := idx.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

func (s *SQLiteIndex) bootstrap() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL REFERENCES collections(name),
			content TEXT NOT NULL,
			embedding BLOB NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			chunk_index INTEGER NOT NULL DEFAULT 0,
			uploaded_at TEXT NOT NULL DEFAULT '',
			scraped_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(collection, filename)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_url ON documents(collection, url)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("bootstrap vector schema: %w", err)
		}
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO collections (name) VALUES (?)`, s.collection); err != nil {
		return fmt.Errorf("ensure collection %q: %w", s.collection, err)
	}

	return nil
}

func (s *SQLiteIndex) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO documents
		(id, collection, content, embedding, filename, url, title, source, chunk_index, uploaded_at, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		m := doc.Metadata
		_, err := stmt.ExecContext(ctx, doc.ID, s.collection, doc.Content,
			encodeFloat32s(doc.Embedding), m.Filename, m.URL, m.Title,
			m.Source, m.ChunkIndex, formatTime(m.UploadedAt), formatTime(m.ScrapedAt))
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add transaction: %w", err)
	}

	s.logger.Debug("documents indexed", zap.Int("count", len(docs)))
	return nil
}

func (s *SQLiteIndex) Query(ctx context.Context, vector []float32, k int, filter Filter) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	where, args := compileFilter(filter)
	query := `SELECT content, embedding FROM documents WHERE collection = ?`
	if where != "" {
		query += " AND " + where
	}

	rows, err := s.db.QueryContext(ctx, query, append([]any{s.collection}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	type scored struct {
		content string
		score   float64
	}
	var candidates []scored

	for rows.Next() {
		var content string
		var blob []byte
		if err := rows.Scan(&content, &blob); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		candidates = append(candidates, scored{
			content: content,
			score:   cosineSimilarity(vector, decodeFloat32s(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	results := make([]string, len(candidates))
	for i, c := range candidates {
		results[i] = c.content
	}
	return results, nil
}

func (s *SQLiteIndex) Get(ctx context.Context, filter Filter, limit int) ([]Entry, error) {
	where, args := compileFilter(filter)
	query := `SELECT id, filename, url, title, source, chunk_index, uploaded_at, scraped_at
		FROM documents WHERE collection = ?`
	if where != "" {
		query += " AND " + where
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, append([]any{s.collection}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("get documents: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var uploadedAt, scrapedAt string
		if err := rows.Scan(&e.ID, &e.Metadata.Filename, &e.Metadata.URL,
			&e.Metadata.Title, &e.Metadata.Source, &e.Metadata.ChunkIndex,
			&uploadedAt, &scrapedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Metadata.UploadedAt = parseTime(uploadedAt)
		e.Metadata.ScrapedAt = parseTime(scrapedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

func (s *SQLiteIndex) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, s.collection)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// compileFilter translates a Filter into a SQL predicate over the dedicated
// filename/url columns. A nil filter compiles to no predicate.
func compileFilter(f Filter) (string, []any) {
	switch v := f.(type) {
	case nil:
		return "", nil
	case ByFilename:
		return inClause("filename", v.Names)
	case ByURL:
		return inClause("url", v.URLs)
	case Or:
		var clauses []string
		var args []any
		for _, sub := range v.Filters {
			c, a := compileFilter(sub)
			if c == "" {
				continue
			}
			clauses = append(clauses, c)
			args = append(args, a...)
		}
		if len(clauses) == 0 {
			return "", nil
		}
		return "(" + strings.Join(clauses, " OR ") + ")", args
	default:
		return "", nil
	}
}

func inClause(column string, values []string) (string, []any) {
	if len(values) == 0 {
		// An empty set matches nothing, not everything.
		return "1 = 0", nil
	}
	placeholders := strings.Repeat("?,", len(values))
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return column + " IN (" + placeholders[:len(placeholders)-1] + ")", args
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeFloat32s(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeFloat32s(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
