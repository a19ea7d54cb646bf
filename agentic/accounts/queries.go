package accounts

const (
	queryFindUserID = `
		SELECT user_id
		FROM oauth_accounts
		WHERE provider = $1 AND provider_account_id = $2
	`

	queryLink = `
		INSERT INTO oauth_accounts (user_id, provider, provider_account_id, access_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_account_id)
		DO UPDATE SET
			access_token = EXCLUDED.access_token,
			updated_at = NOW()
	`
)
