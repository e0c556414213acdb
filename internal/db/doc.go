// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Schema changes go into migrations/<dialect>/NNNN_name.up.sql for every
// supported dialect. Files are applied in lexical order and recorded in
// schema_migrations.

package db
