package repository

import (
	"context"

	"github.com/bazario/bazario/internal/domain"
)

func (r *Repository) GetCountryByID(ctx context.Context, id string) (domain.Country, error) {
	var c domain.Country
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code FROM countries WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		return domain.Country{}, notFound(err)
	}
	return c, nil
}

func (r *Repository) GetCountryByNameAndCode(ctx context.Context, name, code string) (domain.Country, error) {
	var c domain.Country
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code FROM countries WHERE name = $1 AND code = $2`, name, code,
	).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		return domain.Country{}, notFound(err)
	}
	return c, nil
}
