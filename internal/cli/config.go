package cli

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables providing flag defaults.
const (
	EnvDir    = "UDT_FLAT_DIR"
	EnvFormat = "UDT_FLAT_FORMAT"
	EnvDB     = "UDT_FLAT_DB"
)

// Config stores CLI options for a single run.
type Config struct {
	EntryPath   string
	SearchDirs  []string
	Extensions  []string
	Format      string
	Output      string
	DBPath      string
	FromDB      string
	Package     string
	MaxDepth    int
	CacheSize   int
	ShowVersion bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Output
}

// OutputFormat returns the rendering format for generator layer.
func (c *Config) OutputFormat() string {
	return c.Format
}

// PackageName returns the Go package used by the go format.
func (c *Config) PackageName() string {
	return c.Package
}

// LoadEnv reads .env files into the environment. Missing files are ignored.
func LoadEnv(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
