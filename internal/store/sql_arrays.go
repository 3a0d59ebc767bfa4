// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgtype"
)

// textArray returns a scanner decoding a Postgres text[] into dst. A NULL
// array becomes an empty slice. The pgtype.Map caches scan plans and is not
// safe for concurrent use, so a fresh one is built per query.
func textArray(m *pgtype.Map, dst *[]string) sql.Scanner {
	return &nonNullTextArray{inner: m.SQLScanner(dst), dst: dst}
}

type nonNullTextArray struct {
	inner sql.Scanner
	dst   *[]string
}

func (a *nonNullTextArray) Scan(src any) error {
	if err := a.inner.Scan(src); err != nil {
		return err
	}
	if *a.dst == nil {
		*a.dst = []string{}
	}
	return nil
}

// tagsArg normalises a tag slice for use as a query argument so that nil is
// sent as an empty array rather than NULL.
func tagsArg(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
