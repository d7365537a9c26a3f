package config

import "os"

type AppConfig struct {
	Env      string // test, dev or prod
	HTTPAddr string
}

func NewAppConfig() AppConfig {

	conf := AppConfig{
		Env:      os.Getenv("APP_ENV"),
		HTTPAddr: os.Getenv("HTTP_ADDR"),
	}

	if conf.HTTPAddr == "" {
		conf.HTTPAddr = ":8080"
	}

	return conf
}
