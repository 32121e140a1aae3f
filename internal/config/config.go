package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr            string
	FrontendURL        string
	DatabaseURL        string
	DataDir            string
	LLMProviders       string
	OpenAIKey          string
	OpenAIModel        string
	GroqKey            string
	GroqModel          string
	FetchTimeoutSecs   int
	ExtractMaxChars    int
	GenerateInputChars int
	GenerateMaxTokens  int
	ContentMinChars    int
}

func Load() Config {
	return Config{
		APIAddr:            ":" + getenv("PORT", "3001"),
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:8080"),
		DatabaseURL:        getenv("DATABASE_URL", ""),
		DataDir:            getenv("SKILLMUSE_DATA_DIR", "./data/uploads"),
		LLMProviders:       getenv("SKILLMUSE_LLM_PROVIDERS", "openai|mock"),
		OpenAIKey:          getenv("OPENAI_API_KEY", ""),
		OpenAIModel:        getenv("OPENAI_MODEL", "gpt-4o"),
		GroqKey:            getenv("GROQ_API_KEY", ""),
		GroqModel:          getenv("GROQ_MODEL", "llama-3.1-8b-instant"),
		FetchTimeoutSecs:   getenvInt("SKILLMUSE_FETCH_TIMEOUT_SECONDS", 12),
		ExtractMaxChars:    getenvInt("SKILLMUSE_EXTRACT_MAX_CHARS", 10000),
		GenerateInputChars: getenvInt("SKILLMUSE_GENERATE_INPUT_CHARS", 8000),
		GenerateMaxTokens:  getenvInt("SKILLMUSE_GENERATE_MAX_TOKENS", 2000),
		ContentMinChars:    getenvInt("SKILLMUSE_CONTENT_MIN_CHARS", 100),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
