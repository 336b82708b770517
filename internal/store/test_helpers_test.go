package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"bonushunt/internal/config"

	"github.com/jackc/pgx/v5"
)

var testSchemaNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func openStore(t *testing.T) (*Store, context.Context, func()) {
	t.Helper()
	cfg, err := config.LoadTest()
	if err != nil {
		t.Skipf("skip test db: %v", err)
	}
	dsn := cfg.TestPostgresDSN
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	base, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open base db: %v", err)
	}
	createSchemaSQL, err := schemaDDL("CREATE SCHEMA %s", schema)
	if err != nil {
		base.Close()
		t.Fatalf("invalid schema name: %v", err)
	}
	if _, err := base.Exec(createSchemaSQL); err != nil {
		base.Close()
		t.Fatalf("create schema: %v", err)
	}
	base.Close()

	st, err := New(withSearchPath(dsn, schema))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := applySchema(st); err != nil {
		st.Close()
		t.Fatalf("apply schema: %v", err)
	}
	cleanup := func() {
		st.Close()
		base, err := sql.Open("pgx", dsn)
		if err == nil {
			if dropSchemaSQL, ddlErr := schemaDDL("DROP SCHEMA %s CASCADE", schema); ddlErr == nil {
				_, _ = base.Exec(dropSchemaSQL)
			}
			base.Close()
		}
	}
	return st, context.Background(), cleanup
}

func applySchema(st *Store) error {
	path, err := findInitMigrationPath()
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = st.DB.Exec(string(b))
	return err
}

func findInitMigrationPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		p := filepath.Join(dir, "migrations", "000001_init.up.sql")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("000001_init.up.sql not found from %s", dir)
}

func withSearchPath(dsn, schema string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "search_path=" + url.QueryEscape(schema)
}

func schemaDDL(format, schema string) (string, error) {
	if !testSchemaNamePattern.MatchString(schema) {
		return "", fmt.Errorf("schema %q does not match required pattern", schema)
	}
	return fmt.Sprintf(format, pgx.Identifier{schema}.Sanitize()), nil
}

// Users arrive through the external auth flow in production, so tests seed
// rows directly.
func mustSeedUser(t *testing.T, st *Store, ctx context.Context, kickID, username string, balance int64) string {
	t.Helper()
	id := NewID()
	_, err := st.DB.ExecContext(ctx, `
		INSERT INTO users (id, kick_id, username, points_balance)
		VALUES ($1, $2, $3, $4)`, id, kickID, username, balance)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func mustSeedItem(t *testing.T, st *Store, ctx context.Context, name string, cost, quantity int64, available bool) string {
	t.Helper()
	id := NewID()
	_, err := st.DB.ExecContext(ctx, `
		INSERT INTO store_items (id, name, cost, quantity, is_available)
		VALUES ($1, $2, $3, $4, $5)`, id, name, cost, quantity, available)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return id
}

func mustSeedRaffle(t *testing.T, st *Store, ctx context.Context, title, status, entryType string, ticketPrice int64) string {
	t.Helper()
	id := NewID()
	_, err := st.DB.ExecContext(ctx, `
		INSERT INTO raffles (id, title, status, entry_type, ticket_price)
		VALUES ($1, $2, $3, $4, $5)`, id, title, status, entryType, ticketPrice)
	if err != nil {
		t.Fatalf("seed raffle: %v", err)
	}
	return id
}
