package main

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// LOG_LEVEL stays quiet by default so logs do not tear the console layout
	LogLevel        string  `envconfig:"LOG_LEVEL" default:"ERROR"`
	Title           string  `envconfig:"CHAT_TITLE" default:"Chatbot da PIZZARIA DO WILL"`
	CatalogSource   string  `envconfig:"CATALOG_SOURCE" default:"file"`
	CatalogPath     string  `envconfig:"CATALOG_PATH" default:"configs/intents.json"`
	BadgerFilepath  string  `envconfig:"BADGER_FILEPATH" default:"data/catalog"`
	RequiredIntents string  `envconfig:"REQUIRED_INTENTS" default:"cumprimento|compra|itens_disponiveis"`
	ResponseSeed    *uint64 `envconfig:"RESPONSE_SEED"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
