// Package catalog exports converted volumes, placements and replayed hits to
// SQLite, so hits can be decoded by source volume ID without the geometry.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
	"github.com/yaptide/geobridge/pkg/converter/runner"
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS volumes (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	solid TEXT NOT NULL,
	material TEXT NOT NULL,
	module TEXT
);
CREATE TABLE IF NOT EXISTS placements (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	copy_no INTEGER NOT NULL,
	volume_id INTEGER NOT NULL REFERENCES volumes(id),
	mother_id INTEGER REFERENCES placements(id)
);
CREATE TABLE IF NOT EXISTS hits (
	module TEXT NOT NULL,
	volume_id INTEGER NOT NULL REFERENCES volumes(id),
	track_id INTEGER NOT NULL,
	edep REAL NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	z REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS hits_module ON hits (module);
`

// VolumeRecord is a row of the volumes table.
type VolumeRecord struct {
	ID       int64
	Name     string
	Solid    string
	Material string
	// Module is empty for volumes which are not sensitive.
	Module string
}

// PlacementRecord is a row of the placements table. MotherID is nil for the world.
type PlacementRecord struct {
	ID       int64
	Name     string
	CopyNo   int
	VolumeID int64
	MotherID *int64
}

// Store provides SQLite-backed volume catalog.
type Store struct {
	sqlDB *sql.DB
}

// Open opens catalog at path, creating tables if needed. ":memory:" opens a
// private in-memory catalog.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	dsn := memoryPath
	if path != memoryPath {
		dsn = filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// WriteGeometry replaces catalog content with volumes and placements of c.
// registry may be nil if no detectors are attached.
func (s *Store) WriteGeometry(ctx context.Context, c *bridge.Converter, registry *sensitive.Registry) error {
	tables := c.Tables()
	if tables == nil || c.World() == nil {
		return fmt.Errorf("%w: geometry is not constructed", bridge.ErrInvalidState)
	}

	modules := map[int64]string{}
	if registry != nil {
		for _, m := range registry.Modules() {
			for _, reg := range registry.Registrations(m.ID()) {
				modules[int64(reg.VolumeID)] = m.ID()
			}
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"hits", "placements", "volumes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, lv := range tables.Volumes() {
		id, _ := tables.VolumeID(lv)
		var module sql.NullString
		if name, found := modules[int64(id)]; found {
			module = sql.NullString{String: name, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO volumes (id, name, solid, material, module) VALUES (?, ?, ?, ?, ?)`,
			int64(id), lv.Name(), lv.Solid().Kind(), lv.Material().Name(), module,
		)
		if err != nil {
			return fmt.Errorf("insert volume %q: %w", lv.Name(), err)
		}
	}

	for _, p := range tables.Placements() {
		node, _ := tables.Node(p)
		volumeID, _ := tables.VolumeID(p.LogicalVolume())
		var mother sql.NullInt64
		if p.Mother() != nil {
			motherNode, _ := tables.Node(p.Mother())
			mother = sql.NullInt64{Int64: int64(motherNode.ID), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO placements (id, name, copy_no, volume_id, mother_id) VALUES (?, ?, ?, ?, ?)`,
			int64(node.ID), p.Name(), p.CopyNo(), int64(volumeID), mother,
		)
		if err != nil {
			return fmt.Errorf("insert placement %q: %w", p.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// WriteHits appends hits of every module in result.
func (s *Store) WriteHits(ctx context.Context, result runner.Result) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO hits (module, volume_id, track_id, edep, x, y, z) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, module := range result.Modules {
		for _, hit := range module.Hits {
			_, err := stmt.ExecContext(ctx,
				hit.Module, int64(hit.VolumeID), hit.TrackID, hit.EnergyDeposit,
				hit.Position.X, hit.Position.Y, hit.Position.Z,
			)
			if err != nil {
				return fmt.Errorf("insert hit of %s: %w", hit.Module, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Volumes lists catalog volumes ordered by ID.
func (s *Store) Volumes(ctx context.Context) ([]VolumeRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, solid, material, module FROM volumes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query volumes: %w", err)
	}
	defer rows.Close()

	records := []VolumeRecord{}
	for rows.Next() {
		var (
			r      VolumeRecord
			module sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Solid, &r.Material, &module); err != nil {
			return nil, fmt.Errorf("scan volume: %w", err)
		}
		r.Module = module.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// Placements lists catalog placements ordered by ID.
func (s *Store) Placements(ctx context.Context) ([]PlacementRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, copy_no, volume_id, mother_id FROM placements ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	records := []PlacementRecord{}
	for rows.Next() {
		var (
			r      PlacementRecord
			mother sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.CopyNo, &r.VolumeID, &mother); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		if mother.Valid {
			id := mother.Int64
			r.MotherID = &id
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// EnergyByVolume sums energy deposited by hits of module per volume name.
func (s *Store) EnergyByVolume(ctx context.Context, module string) (map[string]float64, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT v.name, SUM(h.edep)
FROM hits h JOIN volumes v ON v.id = h.volume_id
WHERE h.module = ?
GROUP BY v.name
`, module)
	if err != nil {
		return nil, fmt.Errorf("query hits: %w", err)
	}
	defer rows.Close()

	result := map[string]float64{}
	for rows.Next() {
		var (
			name string
			edep float64
		)
		if err := rows.Scan(&name, &edep); err != nil {
			return nil, fmt.Errorf("scan hits: %w", err)
		}
		result[name] = edep
	}
	return result, rows.Err()
}
