package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host string `env:"HOST,default=0.0.0.0"`
	Port int    `env:"PORT,default=3000"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION,default=5m"`
	ResetURL          string        `env:"RESET_URL,default=http://localhost:5173/reset-password"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	BufferSize           int           `env:"BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	BotQueueSize         int           `env:"BOT_QUEUE_SIZE,default=32"`
	BotLabel             string        `env:"BOT_LABEL,default=Bevin"`
	BotTimeout           time.Duration `env:"BOT_TIMEOUT,default=30s"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`

	GeminiAPIKey string `env:"GEMINI_API_KEY,required=true"`
	GeminiModel  string `env:"GEMINI_MODEL,default=gemini-2.5-flash"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM,default=support@devroom.local"`

	LogLevel string `env:"LOG_LEVEL,default=INFO"`
}

// CharacterRune validates that the configured replacement is one rune.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
