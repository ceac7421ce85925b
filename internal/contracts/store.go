package contracts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/steam.works/internal/pricing"
)

// ErrNotFound is returned when no contract has the requested id.
var ErrNotFound = errors.New("contract not found")

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `
	id, reference, title, counterparty, status, vintage_year, annual_volume,
	natural_gas_price, boiler_efficiency, lcfs_price,
	baseline_emissions_factor, project_emissions_factor, om_cost,
	snapshot_json, COALESCE(notes, ''), created_at, updated_at
`

// Store persists contracts in the contracts table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Create validates d, computes its price snapshot and inserts it.
func (s *Store) Create(ctx context.Context, d Draft) (Contract, error) {
	d, snapshotJSON, err := prepare(d)
	if err != nil {
		return Contract{}, err
	}

	now := s.timestamp()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO contracts (
			reference, title, counterparty, status, vintage_year, annual_volume,
			natural_gas_price, boiler_efficiency, lcfs_price,
			baseline_emissions_factor, project_emissions_factor, om_cost,
			snapshot_json, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(), d.Title, d.Counterparty, string(d.Status), d.VintageYear, d.AnnualVolume,
		d.Pricing.NaturalGasPrice, d.Pricing.BoilerEfficiency, d.Pricing.LCFSPrice,
		d.Pricing.BaselineEmissionsFactor, d.Pricing.ProjectEmissionsFactor, d.Pricing.OMCost,
		snapshotJSON, d.Notes, now, now,
	)
	if err != nil {
		return Contract{}, fmt.Errorf("insert contract: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Contract{}, fmt.Errorf("read contract id: %w", err)
	}

	return s.Get(ctx, id)
}

// Get returns the contract with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Contract, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM contracts WHERE id = ?`, id)

	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, fmt.Errorf("query contract %d: %w", id, err)
	}
	return c, nil
}

// List returns contracts whose title, counterparty or notes contain query,
// newest first. An empty query lists every contract.
func (s *Store) List(ctx context.Context, query string) ([]Contract, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM contracts
		WHERE (? = '' OR title LIKE ? OR counterparty LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}
	defer rows.Close()

	list := make([]Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contracts: %w", err)
	}

	return list, nil
}

// Update replaces the writable fields of a contract and recomputes its snapshot.
func (s *Store) Update(ctx context.Context, id int64, d Draft) (Contract, error) {
	d, snapshotJSON, err := prepare(d)
	if err != nil {
		return Contract{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE contracts
		SET
			title = ?,
			counterparty = ?,
			status = ?,
			vintage_year = ?,
			annual_volume = ?,
			natural_gas_price = ?,
			boiler_efficiency = ?,
			lcfs_price = ?,
			baseline_emissions_factor = ?,
			project_emissions_factor = ?,
			om_cost = ?,
			snapshot_json = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`,
		d.Title, d.Counterparty, string(d.Status), d.VintageYear, d.AnnualVolume,
		d.Pricing.NaturalGasPrice, d.Pricing.BoilerEfficiency, d.Pricing.LCFSPrice,
		d.Pricing.BaselineEmissionsFactor, d.Pricing.ProjectEmissionsFactor, d.Pricing.OMCost,
		snapshotJSON, d.Notes, s.timestamp(), id,
	)
	if err != nil {
		return Contract{}, fmt.Errorf("update contract %d: %w", id, err)
	}
	if err := requireAffected(result); err != nil {
		return Contract{}, err
	}

	return s.Get(ctx, id)
}

// Delete removes a contract.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contract %d: %w", id, err)
	}
	return requireAffected(result)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func prepare(d Draft) (Draft, string, error) {
	d, err := d.normalize()
	if err != nil {
		return d, "", err
	}

	snapshot, err := pricing.Compute(d.Pricing)
	if err != nil {
		return d, "", err
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return d, "", fmt.Errorf("encode price snapshot: %w", err)
	}
	return d, string(encoded), nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContract(row scanner) (Contract, error) {
	var (
		c                    Contract
		status               string
		snapshotJSON         string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&c.ID, &c.Reference, &c.Title, &c.Counterparty, &status, &c.VintageYear, &c.AnnualVolume,
		&c.Pricing.NaturalGasPrice, &c.Pricing.BoilerEfficiency, &c.Pricing.LCFSPrice,
		&c.Pricing.BaselineEmissionsFactor, &c.Pricing.ProjectEmissionsFactor, &c.Pricing.OMCost,
		&snapshotJSON, &c.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return Contract{}, err
	}

	c.Status = Status(status)
	if err := json.Unmarshal([]byte(snapshotJSON), &c.Snapshot); err != nil {
		return Contract{}, fmt.Errorf("decode price snapshot: %w", err)
	}
	if c.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Contract{}, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return Contract{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return c, nil
}
