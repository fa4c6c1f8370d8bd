package config

import "fmt"

// ServerListen ...
type ServerListen struct {
	Host string `mapstructure:"host"`
	Port uint16 `mapstructure:"port"`
}

// ListenString ...
func (l ServerListen) ListenString() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

// ServerConfig for the daemon's metrics endpoint
type ServerConfig struct {
	HTTP ServerListen `mapstructure:"http"`
}
