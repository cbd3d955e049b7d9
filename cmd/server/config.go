package main

import "time"

type Config struct {
	Host             string        `env:"HOST,default=0.0.0.0"`
	Port             int           `env:"PORT,default=5000"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	CatalogSource    string        `env:"CATALOG_SOURCE,default=file"`
	CatalogPath      string        `env:"CATALOG_PATH,default=configs/intents.json"`
	BadgerFilepath   string        `env:"BADGER_FILEPATH,default=data/catalog"`
	RequiredIntents  string        `env:"REQUIRED_INTENTS,default=cumprimento|compra|itens_disponiveis"`
	ResponseSeed     *int          `env:"RESPONSE_SEED"`
	MaxMessageLength int           `env:"MAX_MESSAGE_LENGTH,default=2000"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=5s"`
	ReadTimeout      time.Duration `env:"READ_TIMEOUT,default=5s"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}
