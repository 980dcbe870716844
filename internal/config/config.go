package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token          string
	AdminID        int64
	OtherAdmins    []int64
	BackupGroupID  int64
	PhotoGroupID   int64
	WebhookURL     string
	Port           string
	DataDir        string
	BackupInterval time.Duration
}

// Load reads the .env file when present and resolves the configuration from
// the process environment. A missing bot token is the only fatal condition.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found — using system environment variables")
	}

	cfg := &Config{
		Token:          os.Getenv("BOT_TOKEN"),
		AdminID:        envInt64("ADMIN_ID"),
		OtherAdmins:    envIDList("OTHER_ADMINS_ID"),
		BackupGroupID:  envInt64("BACKUP_GROUP_ID"),
		PhotoGroupID:   envInt64("PHOTO_GROUP_ID"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		Port:           os.Getenv("PORT"),
		DataDir:        os.Getenv("DATA_DIR"),
		BackupInterval: time.Minute,
	}
	if cfg.Token == "" {
		return nil, errors.New("BOT_TOKEN is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	return cfg, nil
}

func envInt64(key string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// envIDList parses a comma-separated ID list, skipping anything non-numeric.
func envIDList(key string) []int64 {
	var ids []int64
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
