// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/cinetrend/internal/platform/database/schema"
	"github.com/taibuivan/cinetrend/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the core.movie table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the projection shared by every read query.
var selectColumns = strings.Join([]string{
	schema.CoreMovie.Slug,
	schema.CoreMovie.Title,
	schema.CoreMovie.ReleaseYear,
	schema.CoreMovie.Director,
	schema.CoreMovie.CountryOfBirth,
	schema.CoreMovie.ExtraFilmNote,
	schema.CoreMovie.WonAward,
	schema.CoreMovie.VoteCount,
	schema.CoreMovie.VoteAverage,
	schema.CoreMovie.Runtime,
	schema.CoreMovie.Budget,
}, ", ")

/*
ReplaceAll swaps the stored dataset for records.

Description: Deletes the previous rows and bulk loads the new ones with COPY
inside one transaction, so readers see either the old or the new dataset.

Parameters:
  - context: context.Context
  - records: []Record

Returns:
  - error: Transaction or copy failures
*/
func (repository *PostgresRepository) ReplaceAll(context context.Context, records []Record) error {

	// Establish an isolated transaction for the swap
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Clear the previous dataset
	if _, err := transaction.Exec(context, "DELETE FROM "+schema.CoreMovie.Table); err != nil {
		return dberr.Wrap(err, "delete_movies")
	}

	// Stream the new rows
	rows := make([][]any, len(records))
	for i, record := range records {
		rows[i] = []any{
			i,
			record.Slug,
			record.Title,
			record.ReleaseYear,
			record.Director,
			record.CountryOfBirth,
			record.ExtraFilmNote,
			record.WonAward,
			record.VoteCount,
			record.VoteAverage,
			record.Runtime,
			record.Budget,
		}
	}

	_, err = transaction.CopyFrom(context,
		pgx.Identifier{"core", "movie"},
		schema.CoreMovie.Columns(),
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return dberr.Wrap(err, "copy_movies")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return nil
}

/*
List returns one page of records ordered by their source position.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []Record: Page contents
  - int: Total record count
  - error: Query or scanning errors
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]Record, int, error) {

	// Count the full dataset for pagination metadata
	var total int
	countQuery := "SELECT COUNT(*) FROM " + schema.CoreMovie.Table
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_movies")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2;
	`, selectColumns, schema.CoreMovie.Table, schema.CoreMovie.Position)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_movie")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_movies")
	}

	return records, total, nil
}

/*
FindBySlug resolves a single record by its slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Record: The stored record
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT 1;
	`, selectColumns, schema.CoreMovie.Table, schema.CoreMovie.Slug, schema.CoreMovie.Position)

	record, err := scanRecord(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find_movie")
	}
	return &record, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	err := row.Scan(
		&record.Slug,
		&record.Title,
		&record.ReleaseYear,
		&record.Director,
		&record.CountryOfBirth,
		&record.ExtraFilmNote,
		&record.WonAward,
		&record.VoteCount,
		&record.VoteAverage,
		&record.Runtime,
		&record.Budget,
	)
	return record, err
}
