package sqlite

import (
	"context"
	"fmt"

	"github.com/HerosSMP/Heros-shop.de/internal/model"
)

// SeedData is the set of default records installed into empty collections on
// first startup. The server builds it (it knows how to hash the seed admin's
// password); this package only writes it.
type SeedData struct {
	Products  []model.Product
	SiteTexts []model.SiteText
	Users     []model.User
}

// Seed installs defaults into every collection that is still empty.
//
// Each collection is checked independently: wiping only the products table
// re-seeds products without touching users or texts. A non-empty collection
// is left exactly as it is — seeding happens at most once per collection.
func (db *DB) Seed(ctx context.Context, data SeedData) error {
	empty, err := db.tableEmpty(ctx, "products")
	if err != nil {
		return err
	}
	if empty {
		for i := range data.Products {
			if err := db.Products.Create(ctx, &data.Products[i]); err != nil {
				return fmt.Errorf("seeding products: %w", err)
			}
		}
	}

	empty, err = db.tableEmpty(ctx, "site_texts")
	if err != nil {
		return err
	}
	if empty {
		for i := range data.SiteTexts {
			if err := db.SiteTexts.Create(ctx, &data.SiteTexts[i]); err != nil {
				return fmt.Errorf("seeding site texts: %w", err)
			}
		}
	}

	empty, err = db.tableEmpty(ctx, "users")
	if err != nil {
		return err
	}
	if empty {
		for i := range data.Users {
			if err := db.Users.Create(ctx, &data.Users[i]); err != nil {
				return fmt.Errorf("seeding users: %w", err)
			}
		}
	}

	return nil
}

func (db *DB) tableEmpty(ctx context.Context, table string) (bool, error) {
	// table comes from the fixed call sites above, never from user input.
	var count int
	err := db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: counting rows in %s: %w", table, err)
	}
	return count == 0, nil
}
