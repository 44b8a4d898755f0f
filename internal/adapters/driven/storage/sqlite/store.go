package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
)

// memoryDSN opens a private in-process database.
const memoryDSN = ":memory:"

// Store is a SQLite-based fragment store.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the interface.
var _ driven.FragmentStore = (*Store)(nil)

// NewStore opens a store. If path is empty the database lives in memory
// and disappears when the store is closed.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = memoryDSN
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every :memory: connection is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_fragments.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Insert appends a fragment.
func (s *Store) Insert(ctx context.Context, f domain.Fragment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := insertFragment(ctx, tx, f); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace overwrites a fragment in place. Its seq, and so its position,
// is unchanged.
func (s *Store) Replace(ctx context.Context, f domain.Fragment) error {
	tagsJSON, err := json.Marshal(nonNil(f.Tags))
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE fragments
		SET title = ?, content = ?, type = ?, tags = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, f.Title, f.Content, string(f.Type), string(tagsJSON),
		f.CreatedAt.UnixNano(), f.UpdatedAt.UnixNano(), f.ID)
	if err != nil {
		return fmt.Errorf("replacing fragment: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a fragment.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fragments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting fragment: %w", err)
	}
	return requireAffected(res)
}

// Get retrieves a fragment by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Fragment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, type, tags, created_at, updated_at
		FROM fragments WHERE id = ?
	`, id)

	f, err := scanFragment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns every fragment in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Fragment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, type, tags, created_at, updated_at
		FROM fragments ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("listing fragments: %w", err)
	}
	defer rows.Close()

	fragments := []domain.Fragment{}
	for rows.Next() {
		f, err := scanFragment(rows)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, *f)
	}
	return fragments, rows.Err()
}

// Reset replaces the collection in a single transaction.
func (s *Store) Reset(ctx context.Context, fragments []domain.Fragment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM fragments"); err != nil {
		return fmt.Errorf("clearing fragments: %w", err)
	}
	for _, f := range fragments {
		if err := insertFragment(ctx, tx, f); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertFragment(ctx context.Context, tx *sql.Tx, f domain.Fragment) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM fragments WHERE id = ?", f.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking fragment id: %w", err)
	}
	if exists > 0 {
		return domain.ErrAlreadyExists
	}

	tagsJSON, err := json.Marshal(nonNil(f.Tags))
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fragments (id, title, content, type, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.Title, f.Content, string(f.Type), string(tagsJSON),
		f.CreatedAt.UnixNano(), f.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("inserting fragment: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFragment(row scanner) (*domain.Fragment, error) {
	var (
		f         domain.Fragment
		typ       string
		tagsJSON  string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&f.ID, &f.Title, &f.Content, &typ, &tagsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	f.Type = domain.FragmentType(typ)
	if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags for %s: %w", f.ID, err)
	}
	f.CreatedAt = time.Unix(0, createdAt)
	f.UpdatedAt = time.Unix(0, updatedAt)
	return &f, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
