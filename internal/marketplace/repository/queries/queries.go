package queries

const (
	UpsertTaskQuery = `INSERT INTO tasks (
		task_id, creator, worker, title, metadata_ref, submission_ref,
		reward, status, category, tags_digest, created_at, apply_deadline,
		delivery_deadline, review_deadline, accepted_at, completed_at,
		worker_rated, creator_rated
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	UpsertApplicantQuery = `INSERT INTO task_applicants (task_id, position, applicant) VALUES (?, ?, ?)`

	UpsertPendingBalanceQuery = `INSERT INTO pending_balances (account, balance) VALUES (?, ?)`

	UpsertRatingQuery = `INSERT INTO ratings (account, total_stars, rating_count) VALUES (?, ?, ?)`

	InsertTransitionQuery = `INSERT INTO task_transitions (task_id, occurred_at, event_type, payload) VALUES (?, ?, ?, ?)`
)
