package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// ledgerRepo implements LedgerRepo on the skill_ledger table. Each skill is
// one row so increments stay field-level.
type ledgerRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *ledgerRepo) Get(ctx context.Context, userID string) (map[string]int, error) {
	return readLedger(ctx, r.drv, userID)
}

func (r *ledgerRepo) Merge(ctx context.Context, userID string, delta map[string]int) (map[string]int, error) {
	for skill, xp := range delta {
		if xp < 0 {
			return nil, fmt.Errorf("negative xp %d for skill %q", xp, skill)
		}
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	now := time.Now().UnixMilli()
	for skill, xp := range delta {
		if xp == 0 {
			continue
		}
		query, args := builder().Insert(tableLedger).
			Columns("user_id", "skill", "xp", "updated_at").
			Values(userID, skill, xp, now).
			OnConflict(
				entsql.ConflictColumns("user_id", "skill"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.Add("xp", xp)
					u.SetExcluded("updated_at")
				}),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("increment %q: %w", skill, err)
		}
	}

	totals, err := readLedger(ctx, tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return totals, nil
}

func (r *ledgerRepo) Reset(ctx context.Context, userID string) error {
	query, args := builder().Delete(tableLedger).
		Where(entsql.EQ("user_id", userID)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}

func (r *ledgerRepo) Users(ctx context.Context) ([]string, error) {
	b := builder()
	query, args := b.Select("user_id").
		Distinct().
		From(b.Table(tableLedger)).
		OrderBy("user_id").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func readLedger(ctx context.Context, q dialect.ExecQuerier, userID string) (map[string]int, error) {
	b := builder()
	query, args := b.Select("skill", "xp").
		From(b.Table(tableLedger)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			skill string
			xp    int
		)
		if err := rows.Scan(&skill, &xp); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out[skill] = xp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return out, nil
}
