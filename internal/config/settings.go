package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Settings holds everything read from the environment at startup. The
// defaults keep a bare `go run` working against local Mongo/Redis/Qdrant.
type Settings struct {
	MongoURI                string
	DBName                  string
	UsersCollection         string
	FAQsCollection          string
	QueriesCollection       string
	ReviewsCollection       string
	QuestionnairesCollection string

	JWTSecretKey string

	Host string
	Port string

	CORSOrigins []string

	RedisAddr     string
	RedisPassword string

	QdrantHost string
	QdrantPort int

	EmbeddingProvider string
	OpenAIAPIKey      string
	GoogleAPIKey      string

	Debug       bool
	Environment string
}

var (
	settings *Settings
	loadOnce sync.Once
)

// Load reads .env (if present) and the process environment exactly once.
func Load() *Settings {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment variables")
		}
		settings = fromEnv()
	})
	return settings
}

func fromEnv() *Settings {
	s := &Settings{
		MongoURI:                 getEnv("MONGODB_URI", "mongodb://localhost:27017/university_bot"),
		DBName:                   getEnv("DB_NAME", "university_bot"),
		UsersCollection:          getEnv("USERS_COLLECTION", "users"),
		FAQsCollection:           getEnv("FAQS_COLLECTION", "faqs"),
		QueriesCollection:        getEnv("QUERIES_COLLECTION", "queries"),
		ReviewsCollection:        getEnv("REVIEWS_COLLECTION", "reviews"),
		QuestionnairesCollection: getEnv("QUESTIONNAIRES_COLLECTION", "questionnaires"),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "fallback-secret-key-change-in-production"),

		Host: getEnv("API_HOST", "0.0.0.0"),
		Port: getEnv("PORT", getEnv("API_PORT", "8000")),

		RedisAddr:     getEnv("REDIS_ADDR", RedisDefaultAddr),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		QdrantHost: getEnv("QDRANT_HOST", QdrantDefaultHost),
		QdrantPort: getEnvInt("QDRANT_PORT", QdrantDefaultGrpcPort),

		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),

		Debug:       strings.ToLower(getEnv("DEBUG", "true")) == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	s.CORSOrigins = corsOrigins(s.Debug)
	return s
}

func corsOrigins(debug bool) []string {
	if debug {
		return []string{"*"}
	}
	env := os.Getenv("CORS_ORIGINS")
	if env == "" {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	var origins []string
	for _, o := range strings.Split(env, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key string, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return val
}
