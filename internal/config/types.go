package config

// holds all server configuration loaded from the environment
type Config struct {
	DatabaseURL   string
	JWTSecret     string
	SessionSecret string
	Environment   string
	BaseURL       string
	Port          string

	GoogleClientID     string
	GoogleClientSecret string
	GithubClientID     string
	GithubClientSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// destination for contact form submissions
	ContactEmailTo string

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	// public base URL under which uploaded objects are reachable
	S3PublicBaseURL string

	// maximum accepted avatar upload size in bytes
	MaxAvatarBytes int64
}

// reports whether the server is running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
