// Package setup builds the process-level collaborators (oracle adapter,
// database pool, rate limiter) from environment configuration. It is
// shared by the grow, server, and export binaries.
package setup

import (
	"context"
	"fmt"

	"github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/ai"
	oll "github.com/aerugo/ancestral-vision/pkg/ai/ollama"
	oai "github.com/aerugo/ancestral-vision/pkg/ai/openai"
	"github.com/aerugo/ancestral-vision/pkg/ratelimit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// NewOracleFromEnv builds the configured oracle adapter. AV_LLM_ADAPTER
// selects "ollama" or the OpenAI-compatible default.
func NewOracleFromEnv() (ai.OracleClient, error) {
	switch util.GetEnv("AV_LLM_ADAPTER") {
	case "ollama":
		client, err := oll.NewOracleOllamaClient(oll.NewOracleOllamaClientParams{
			ChatModel:      util.GetEnv("AV_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AV_EMBED_MODEL"),
			BaseURL:        util.GetEnv("AV_LLM_URL"),
			ApiKey:         util.GetEnv("AV_LLM_KEY"),
		})
		if err != nil {
			return nil, fmt.Errorf("creating ollama client: %w", err)
		}
		return client, nil
	default:
		return oai.NewOracleOpenAIClient(oai.NewOracleOpenAIClientParams{
			ChatModel:      util.GetEnv("AV_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AV_EMBED_MODEL"),
			BaseURL:        util.GetEnv("AV_LLM_URL"),
			APIKey:         util.GetEnv("AV_LLM_KEY"),
		}), nil
	}
}

// NewLimiterFromEnv builds the oracle rate limiter from AV_RPM. Zero or
// unset means unlimited.
func NewLimiterFromEnv() *ratelimit.Limiter {
	return ratelimit.PerMinute(util.GetEnvInt("AV_RPM", 0))
}

// OpenDatabase opens a pgx pool against DATABASE_URL with pgvector types
// registered on every connection.
func OpenDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(util.GetEnv("DATABASE_URL"))
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}
