package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/viper"
)

// Config keys. Each is settable as a flag, a TNT_* environment variable
// (dots and dashes become underscores) or a key in tnt.yaml.
const (
	keyDB        = "db"
	keyMode      = "search.mode"
	keyBatchSize = "import.batch-size"

	defaultBatchSize = 1000
)

// configString returns the value for key, or defaultValue when no flag,
// variable or config entry sets it. An explicitly empty value is returned
// as is.
func configString(key, defaultValue string) string {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return strings.TrimSpace(viper.GetString(key))
}

// configBool retrieves a bool config value; unset is false
func configBool(key string) bool {
	return viper.GetBool(key)
}

// storePath resolves the store location. Setting it to an empty string
// is a mistake, not a request for the default.
func storePath() (string, error) {
	path := configString(keyDB, util.DefaultStorePath())
	if path == "" {
		return "", fmt.Errorf("%w: %s is set but empty", util.ErrInvalidConfig, keyDB)
	}
	return path, nil
}

// batchSize resolves the rows per import transaction. Zero, negative and
// non-numeric values are rejected instead of falling back to the default.
func batchSize() (int, error) {
	raw := configString(keyBatchSize, strconv.Itoa(defaultBatchSize))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", util.ErrInvalidConfig, keyBatchSize, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be at least 1, got %d", util.ErrInvalidConfig, keyBatchSize, n)
	}
	return n, nil
}
