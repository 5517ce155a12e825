package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	BIND_ADDRESS    = "0.0.0.0:8080"
	TLS_DOMAINS     = ""   // e.g. "example.com,example2.com"
	DEBUG_MODE      = true // logs error response bodies
	PUBLIC_BASE_URL = "http://localhost:8080"
	// Record store. The first one configured wins: Mongo, MySQL, SQLite, then in-memory
	MONGO_URI      = ""
	MONGO_DATABASE = "wedding-gallery"
	MYSQL_DSN      = ""
	SQLITE_FILE    = ""
	// Object store, "s3" (AWS S3, Backblaze B2 or any S3 compatible endpoint) or "disk"
	OBJECT_STORE        = "disk"
	S3_ENDPOINT         = "" // e.g. https://s3.us-west-004.backblazeb2.com
	S3_REGION           = "us-east-1"
	S3_BUCKET           = ""
	S3_KEY              = ""
	S3_SECRET           = ""
	S3_PREFIX           = "wedding/"
	S3_PUBLIC_URL       = "" // Public URL prefix of the bucket, the upload location is used if empty
	S3_FORCE_PATH_STYLE = false
	DISK_DIR            = "./data/photos"
	// Admin access. Both gates are independent
	ADMIN_PASSWORD = "" // login for bearer tokens, login is disabled if empty
	JWT_SECRET     = ""
	ADMIN_PASSCODE = "" // shared passcode for resetting upload counters, disabled if empty
	SESSION_KEY    = DefaultSessionKey
	// Limits
	MAX_UPLOADS_PER_DEVICE = 30
	EXPORT_FETCH_TIMEOUT   = 10 * time.Second
	EXPORT_CONCURRENCY     = 8
)

// DefaultSessionKey is public, serve warns when it is still in use
const DefaultSessionKey = "change me, guest session cookie key"

// fileValues holds settings read from a config file, environment variables override them
var fileValues = map[string]string{}

func init() {
	readAll()
}

// Load reads an optional YAML file with the same keys as the environment
// variables (e.g. `ADMIN_PASSWORD: secret`) and re-applies the environment on top.
func Load(path string) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		raw := map[string]any{}
		if err = yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		fileValues = make(map[string]string, len(raw))
		for k, v := range raw {
			fileValues[strings.ToUpper(k)] = fmt.Sprint(v)
		}
	}
	readAll()
	return nil
}

func readAll() {
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("PUBLIC_BASE_URL", &PUBLIC_BASE_URL)
	readEnvString("MONGO_URI", &MONGO_URI)
	readEnvString("MONGO_DATABASE", &MONGO_DATABASE)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("OBJECT_STORE", &OBJECT_STORE)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_PUBLIC_URL", &S3_PUBLIC_URL)
	readEnvBool("S3_FORCE_PATH_STYLE", &S3_FORCE_PATH_STYLE)
	readEnvString("DISK_DIR", &DISK_DIR)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvString("ADMIN_PASSCODE", &ADMIN_PASSCODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("MAX_UPLOADS_PER_DEVICE", &MAX_UPLOADS_PER_DEVICE)
	readEnvDuration("EXPORT_FETCH_TIMEOUT", &EXPORT_FETCH_TIMEOUT)
	readEnvInt("EXPORT_CONCURRENCY", &EXPORT_CONCURRENCY)
}

func lookup(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fileValues[name]
}

func readEnvString(name string, value *string) {
	v := lookup(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(lookup(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := lookup(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

// readEnvDuration accepts Go durations ("10s") or plain seconds ("10")
func readEnvDuration(name string, value *time.Duration) {
	v := lookup(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*value = d
		return
	}
	if s, err := strconv.Atoi(v); err == nil {
		*value = time.Duration(s) * time.Second
	}
}
