package global

import (
	"context"
	"os"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// Config holds every setting the API reads from the environment.
type Config struct {
	Port          string
	Env           string
	MongoURI      string
	DatabaseName  string
	RedisAddress  string
	RedisPassword string
	JWTSecret     string
	FrontendURL   string
	AllowOrigins  []string

	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
	OAuthCallbackBase  string

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool

	AzureOpenAIEndpoint   string
	AzureOpenAIKey        string
	AzureOpenAIDeployment string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func LoadConfig() *Config {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		Log.Fatal("MONGODB_URI is not set in environment variables")
	}

	return &Config{
		Port:          GetEnvOrDefault("PORT", "8000"),
		Env:           GetEnvOrDefault("ENV", "development"),
		MongoURI:      mongoURI,
		DatabaseName:  GetEnvOrDefault("MONGODB_DATABASE", "storefront"),
		RedisAddress:  GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		JWTSecret:     GetEnvOrDefault("JWT_SECRET", "dev-secret-please-change"),
		FrontendURL:   GetEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		AllowOrigins:  splitList(GetEnvOrDefault("CORS_ORIGINS", "")),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		OAuthCallbackBase:  GetEnvOrDefault("OAUTH_CALLBACK_BASE", "http://localhost:8000"),

		MidtransServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey:  os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransProduction: os.Getenv("MIDTRANS_ENV") == "production",

		AzureOpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureOpenAIKey:        os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureOpenAIDeployment: GetEnvOrDefault("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-35-turbo"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
