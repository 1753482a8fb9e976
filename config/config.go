// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"dario.cat/mergo"
	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
	"github.com/joho/godotenv"
)

// Memory is the store URI that selects an in-memory store.
const Memory = "memory"

// The available upload services.
const (
	Disk   = "disk"
	GridFS = "gridfs"
	Minio  = "minio"
)

// Config describes the process configuration.
type Config struct {
	// The HTTP port.
	Port string

	// The MongoDB URI or "memory".
	StoreURI string

	// The upload service, one of "disk", "gridfs" or "minio".
	UploadService string

	// The directory used by the disk upload service.
	UploadDir string

	// The maximum size of upload requests in bytes. Zero means no limit.
	UploadLimit int64

	// The Minio connection used by the minio upload service.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSecure    bool
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Port:          "5000",
		StoreURI:      "mongodb://localhost:27017/social_media",
		UploadService: Disk,
		UploadDir:     "uploads",
		MinioBucket:   "uploads",
	}
}

// Load will read an optional .env file and return the configuration from the
// environment.
func Load(files ...string) (Config, error) {
	// load env files
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, xo.W(err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv will build the configuration using the provided lookup function.
// Missing values are filled from the defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	// read values
	cfg := Config{
		Port:           getenv("PORT"),
		StoreURI:       getenv("MONGODB_URI"),
		UploadService:  getenv("UPLOAD_SERVICE"),
		UploadDir:      getenv("UPLOAD_DIR"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET"),
	}

	// parse upload limit
	if str := getenv("UPLOAD_LIMIT"); str != "" {
		limit, err := serve.ByteSize(str)
		if err != nil {
			return Config{}, xo.F("invalid UPLOAD_LIMIT: %s", str)
		}
		cfg.UploadLimit = limit
	}

	// parse minio secure
	if str := getenv("MINIO_SECURE"); str != "" {
		secure, err := strconv.ParseBool(str)
		if err != nil {
			return Config{}, xo.F("invalid MINIO_SECURE: %s", str)
		}
		cfg.MinioSecure = secure
	}

	// fill defaults
	err := mergo.Merge(&cfg, Defaults())
	if err != nil {
		return Config{}, xo.W(err)
	}

	// validate
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate will validate the configuration.
func (c Config) Validate() error {
	// check port
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return xo.F("invalid PORT: %s", c.Port)
	}

	// check upload service
	switch c.UploadService {
	case Disk, GridFS:
	case Minio:
		if c.MinioEndpoint == "" {
			return xo.F("missing MINIO_ENDPOINT")
		}
	default:
		return xo.F("invalid UPLOAD_SERVICE: %s", c.UploadService)
	}

	return nil
}
