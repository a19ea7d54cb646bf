package users

const userColumns = `id, email, name, avatar_url, password_hash, role, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO users (email, name, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	queryFindOrCreateByEmail = `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT ((LOWER(email)))
		DO UPDATE SET updated_at = NOW()
		RETURNING ` + userColumns

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryFindByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	queryUpdateName = `
		UPDATE users
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	queryUpdateAvatar = `
		UPDATE users
		SET avatar_url = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	queryUpdatePassword = `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`

	querySetResetToken = `
		UPDATE users
		SET reset_token_hash = $1, reset_token_expires = $2, updated_at = NOW()
		WHERE LOWER(email) = LOWER($3)
	`

	// single statement: sets the new password and clears the token pair
	// atomically, and only while the token is still live
	queryConsumeResetToken = `
		UPDATE users
		SET password_hash = $2,
			reset_token_hash = NULL,
			reset_token_expires = NULL,
			updated_at = NOW()
		WHERE reset_token_hash = $1 AND reset_token_expires > NOW()
	`

	queryDelete = `
		DELETE FROM users
		WHERE id = $1
	`
)
