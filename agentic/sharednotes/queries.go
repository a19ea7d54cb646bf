package sharednotes

const (
	queryCreate = `
		INSERT INTO shared_notes (id, user_id, bot_id, bot_name, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, bot_id, bot_name, content, created_at
	`

	queryGet = `
		SELECT id, user_id, bot_id, bot_name, content, created_at
		FROM shared_notes
		WHERE id = $1
	`
)
