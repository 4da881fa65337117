package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory storing the escrow state.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"

	DbLocation   = "db"
	KeysLocation = "keys"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("escrowd", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("ESCROW")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir returns the data directory, creating it if needed.
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

// GetDbDir returns the db directory inside the datadir, creating the whole
// path if needed.
func GetDbDir() (string, error) {
	dir := filepath.Join(GetDatadir(), DbLocation)
	if err := makeDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("creating db dir: %w", err)
	}
	return dir, nil
}

// GetKeysDir returns the keys directory inside the datadir, creating the
// whole path if needed.
func GetKeysDir() (string, error) {
	dir := filepath.Join(GetDatadir(), KeysLocation)
	if err := makeDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("creating keys dir: %w", err)
	}
	return dir, nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
