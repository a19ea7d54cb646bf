package notes

const (
	queryGet = `
		SELECT user_id, bot_id, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND bot_id = $2
	`

	// single-statement upsert on the composite key; two concurrent saves from
	// the same user converge on the last committed write instead of racing a
	// read-then-write into a duplicate row
	queryUpsert = `
		INSERT INTO notes (user_id, bot_id, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, bot_id)
		DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = NOW()
		RETURNING user_id, bot_id, content, created_at, updated_at
	`
)
