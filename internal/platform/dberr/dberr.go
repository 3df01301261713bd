// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/cinetrend/internal/platform/apperr"
)

var (
	// ErrNotFound is returned for a slug with no stored movie.
	ErrNotFound = apperr.NotFound("Movie")

	// ErrSchemaMissing is returned while the movie table has not been migrated.
	ErrSchemaMissing = apperr.ServiceUnavailable("Movie store is not ready")
)

// Wrap maps err onto the API error vocabulary, tagging unexpected failures with action.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedTable, pgerrcode.InvalidSchemaName:
			schemaErr := *ErrSchemaMissing
			schemaErr.Cause = fmt.Errorf("%s: %w", action, err)
			return &schemaErr
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
