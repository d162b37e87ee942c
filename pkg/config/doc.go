// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
//
// Fields are declared with `env` struct tags and parsed by caarlos0/env;
// the .env file is read at most once per process via godotenv and never
// overrides variables already present in the environment.
//
//	type Config struct {
//	    APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
package config
