package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/fernandezgh/kanban/pkg/clog"
)

type BaseEnv struct {
	Env      string   `envconfig:"ENV" default:"local"`
	LogLevel string   `envconfig:"LOG_LEVEL" default:"info"`
	Columns  []string `envconfig:"COLUMNS" default:"New,Analysis,Development,Test,Done"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".kanban/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"kanban/"`
	S3Region string `envconfig:"S3_REGION" default:"eu-west-1"`
}

type Env struct {
	BaseEnv
	StorageEnv
}

const namespace = "KANBAN"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if len(env.Columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	return clog.ParseLevel(e.LogLevel)
}
