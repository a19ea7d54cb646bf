package logintokens

const (
	queryCreate = `
		INSERT INTO login_tokens (id, email, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	// consumption deletes the row, so a token can only ever resolve once
	queryConsume = `
		DELETE FROM login_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
		RETURNING email
	`

	queryDeleteExpired = `
		DELETE FROM login_tokens
		WHERE expires_at <= NOW()
	`
)
