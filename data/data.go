// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the SQL migrations so the binary can migrate without
// a migrations directory on disk.
package data

import "embed"

// Migrations holds migrations/*.sql in golang-migrate naming.
//
//go:embed migrations/*.sql
var Migrations embed.FS
