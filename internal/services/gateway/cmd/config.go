package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port      string
	ZonesPath string
	Prefork   bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:      getenv("PORT", "5009"),
		ZonesPath: getenv("ZONES_PATH", "config/zones.json"),
		Prefork:   getenvBool("HTTP_PREFORK", false),
	}
}
