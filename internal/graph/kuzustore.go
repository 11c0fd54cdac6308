//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore persists a gather result into a KuzuDB graph database so the
// dependency graph can be queried with Cypher across sessions. It requires
// CGO because the go-kuzu driver wraps KuzuDB's C library. The store is a
// pure sink: gather correctness never depends on it.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS File(
		path STRING,
		PRIMARY KEY(path)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM File TO File)`,
	`CREATE REL TABLE IF NOT EXISTS MISSING(FROM File TO File, ref STRING)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// Persist writes the full gather result into the database. Every discovered
// file becomes a File node; resolved edges become DEPENDS_ON rels; missing
// references become MISSING rels from the source to a synthetic node named
// after the raw reference string.
func (s *KuzuStore) Persist(ctx context.Context, result *Result) error {
	if err := s.InitSchema(ctx); err != nil {
		return err
	}

	for _, path := range result.Resolved.SortedKeys() {
		if err := s.exec(
			"MERGE (f:File {path: $path})",
			map[string]any{"path": path},
		); err != nil {
			return err
		}
	}

	for _, src := range result.Resolved.SortedKeys() {
		for _, dst := range result.Resolved[src] {
			if err := s.exec(
				`MERGE (b:File {path: $dst})`,
				map[string]any{"dst": dst},
			); err != nil {
				return err
			}
			if err := s.exec(
				`MATCH (a:File {path: $src}), (b:File {path: $dst})
				 CREATE (a)-[:DEPENDS_ON]->(b)`,
				map[string]any{"src": src, "dst": dst},
			); err != nil {
				return err
			}
		}
	}

	for src, refs := range result.Missing {
		for _, ref := range refs {
			if err := s.exec(
				`MERGE (b:File {path: $ref})`,
				map[string]any{"ref": "missing:" + ref},
			); err != nil {
				return err
			}
			if err := s.exec(
				`MATCH (a:File {path: $src}), (b:File {path: $ref})
				 CREATE (a)-[:MISSING {ref: $raw}]->(b)`,
				map[string]any{"src": src, "ref": "missing:" + ref, "raw": ref},
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// Stats counts File nodes and DEPENDS_ON rels currently in the database.
func (s *KuzuStore) Stats(_ context.Context) (*Stats, error) {
	files, err := s.count("MATCH (f:File) RETURN count(f)")
	if err != nil {
		return nil, err
	}
	edges, err := s.count("MATCH ()-[r:DEPENDS_ON]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	missing, err := s.count("MATCH ()-[r:MISSING]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	return &Stats{FileCount: files, EdgeCount: edges, MissingCount: missing}, nil
}

// exec runs a parameterized Cypher statement, discarding results.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// count runs a single-value count query.
func (s *KuzuStore) count(cypher string) (int, error) {
	res, err := s.conn.Query(cypher)
	if err != nil {
		return 0, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	if !res.HasNext() {
		return 0, nil
	}
	tuple, err := res.Next()
	if err != nil {
		return 0, fmt.Errorf("kuzu: next: %w", err)
	}
	vals, err := tuple.GetAsSlice()
	if err != nil {
		return 0, fmt.Errorf("kuzu: row values: %w", err)
	}
	if len(vals) == 0 {
		return 0, nil
	}
	if n, ok := vals[0].(int64); ok {
		return int(n), nil
	}
	return 0, nil
}
