package config

import "time"

const (
	TRACE_ID_KEY = "traceId"

	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10

	// Retrieval thresholds. Answers below MinAnswerScore fall back to the
	// apology message; the semantic cache only returns near-duplicates.
	MinAnswerScore        float32 = 0.70
	CacheSimilarityCutoff float32 = 0.97

	FallbackAnswer = "I'm sorry, I couldn't find a relevant answer to your question. Please try rephrasing or contact support."

	// Vector index
	FAQCollectionName     = "faq-index"
	CacheCollectionName   = "semantic-cache"
	EmbeddingDimension    = 1536
	QdrantDefaultHost     = "localhost"
	QdrantDefaultGrpcPort = 6334
	QdrantUseTLS          = false
	QdrantPoolSize        = 1

	// Embedding providers
	ProviderOpenAI       = "openai"
	ProviderGoogle       = "google"
	OpenAIEmbeddingModel = "text-embedding-3-small"
	GoogleEmbeddingModel = "gemini-embedding-001"

	// Worker pool
	RequestsPerNewWorkerCount int64 = 25
	MaxWorkerCount            int64 = 4
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobBufferLimit                  = 100

	// Server timeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	// JWT
	TokenLifetime = 24 * time.Hour

	// Redis
	RedisDefaultAddr = "127.0.0.1:6379"
	RedisJobStoreDB  = 0
	RedisJobStoreTTL = 24 * time.Hour

	MongoConnectTimeout = 10 * time.Second
)
