package config

import "os"

type BrokerConfig struct {
	// AMQP connection URL; empty disables the broker emitter.
	URL string
}

func BrokerConf() *BrokerConfig {
	return &BrokerConfig{
		URL: os.Getenv("AMQP_URL"),
	}
}
