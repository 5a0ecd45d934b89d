package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string // uploaded documents are retained here per run

	ScalePath string // optional YAML grade-scale file; empty uses defaults

	AuthSecret string

	AdminUser     string
	AdminPassHash string // bcrypt
	StaffUser     string
	StaffPassHash string // bcrypt

	CORSOrigins []string

	Workers        int // concurrent document extractions per batch
	MaxDocBytes    int // per-document size limit
	PercentileMode string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		ScalePath:      os.Getenv("SCALE_CONFIG"),
		AuthSecret:     envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		StaffUser:      os.Getenv("STAFF_USER"),
		StaffPassHash:  os.Getenv("STAFF_PASS_HASH"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
		Workers:        envInt("PIPELINE_WORKERS", 4),
		MaxDocBytes:    envInt("MAX_DOC_BYTES", 4<<20),
		PercentileMode: envOr("PERCENTILE_MODE", "exclusive"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
