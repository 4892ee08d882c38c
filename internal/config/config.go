package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Conversation log
	DBPath string
	// Persona and frontend
	PersonaPath string
	PublicDir   string
	// Backend configuration
	GeminiAPIKey string
	OllamaURL    string
	DefaultModel string
	// Tool integrations
	PCAgentURL          string
	CalendarCredentials string
	// Context assembly
	RecallKeywordsFile string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		DBPath:      getEnv("DB_PATH", "data/nova.db"),
		PersonaPath: getEnv("PERSONA_PATH", "persona.js"),
		PublicDir:   getEnv("PUBLIC_DIR", "public"),
		// Backend configuration
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		DefaultModel: getEnv("DEFAULT_MODEL", "gemini-2.0-flash"),
		// Tool integrations (empty disables the tool)
		PCAgentURL:          getEnv("PC_AGENT_URL", ""),
		CalendarCredentials: getEnv("CALENDAR_CREDENTIALS", "service-account.json"),
		RecallKeywordsFile:  getEnv("RECALL_KEYWORDS_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
