package repository

import (
	"fmt"

	"github.com/Mateiul123/Blockchainworkapp/pkg/database"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id bigint PRIMARY KEY,
		creator text,
		worker text,
		title text,
		metadata_ref text,
		submission_ref text,
		reward text,
		status text,
		category text,
		tags_digest text,
		created_at timestamp,
		apply_deadline timestamp,
		delivery_deadline timestamp,
		review_deadline timestamp,
		accepted_at timestamp,
		completed_at timestamp,
		worker_rated boolean,
		creator_rated boolean
	)`,
	`CREATE TABLE IF NOT EXISTS task_applicants (
		task_id bigint,
		position int,
		applicant text,
		PRIMARY KEY (task_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS pending_balances (
		account text PRIMARY KEY,
		balance text
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		account text PRIMARY KEY,
		total_stars bigint,
		rating_count bigint
	)`,
	`CREATE TABLE IF NOT EXISTS task_transitions (
		task_id bigint,
		occurred_at timestamp,
		event_type text,
		payload text,
		PRIMARY KEY (task_id, occurred_at, event_type)
	)`,
}

// EnsureSchema creates the archive tables if they do not exist.
func EnsureSchema(db *database.Connection) error {
	for _, stmt := range schemaStatements {
		if err := db.Session().Query(stmt).Exec(); err != nil {
			return fmt.Errorf("error applying archive schema: %w", err)
		}
	}
	return nil
}
