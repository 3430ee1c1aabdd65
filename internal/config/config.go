package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	ServerPort      string
	BotToken        string
	WebhookBaseURL  string
	WebhookSecret   string
	AdminIDs        []string
	RoundSeconds    int
	MaxRounds       int
	MinPlayers      int
	MaxPlayers      int
	ClipSendSecs    int
	RevealPauseSecs int
}

func Load() *Config {
	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "guesssong"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		BotToken:        getEnv("BOT_TOKEN", ""),
		WebhookBaseURL:  getEnv("WEBHOOK_BASE_URL", ""),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", "webhook-secret-change-me"),
		AdminIDs:        splitCSV(getEnv("ADMIN_IDS", "")),
		RoundSeconds:    getEnvInt("ROUND_SECONDS", 30),
		MaxRounds:       getEnvInt("MAX_ROUNDS", 5),
		MinPlayers:      getEnvInt("MIN_PLAYERS", 1),
		MaxPlayers:      getEnvInt("MAX_PLAYERS", 20),
		ClipSendSecs:    getEnvInt("CLIP_SEND_SECONDS", 10),
		RevealPauseSecs: getEnvInt("REVEAL_PAUSE_SECONDS", 2),
	}
}

// IsAdmin reports whether the given user id is a configured bot admin.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
