package cmd

// Config carries the environment settings of the application.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisURL   string
	AmqpURL    string
}
