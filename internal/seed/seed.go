package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/steam.works/internal/contracts"
	"github.com/Simplici0/steam.works/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// demoContracts are inserted once each, keyed by title.
func demoContracts() []contracts.Draft {
	base := pricing.DefaultInput()

	clean := base
	clean.ProjectEmissionsFactor = 0

	return []contracts.Draft{
		{
			Title:        "Demo steam offtake",
			Counterparty: "Central Valley Foods",
			Status:       contracts.StatusActive,
			VintageYear:  2024,
			AnnualVolume: 100000,
			Pricing:      base,
			Notes:        "Reference scenario",
		},
		{
			Title:        "Demo zero-emission pilot",
			Counterparty: "Bay Area Paper Mill",
			Status:       contracts.StatusDraft,
			VintageYear:  2025,
			AnnualVolume: 25000,
			Pricing:      clean,
		},
	}
}

// Run inserts the demo contracts that are not present yet. It is idempotent.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	store := contracts.NewStore(db)
	stats := Stats{}

	for _, d := range demoContracts() {
		var exists bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM contracts WHERE title = ? LIMIT 1)`, d.Title).Scan(&exists); err != nil {
			return stats, fmt.Errorf("check demo contract %q existence: %w", d.Title, err)
		}
		if exists {
			continue
		}

		if _, err := store.Create(ctx, d); err != nil {
			return stats, fmt.Errorf("insert demo contract %q: %w", d.Title, err)
		}
		stats.Inserts++
	}

	return stats, nil
}
