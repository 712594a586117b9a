package config

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Reader   ReaderConfig `mapstructure:"reader"`
}

// ReaderConfig tunes object decoding. Zero values select the library
// defaults.
type ReaderConfig struct {
	MaxObjectSize    int  `mapstructure:"max_object_size"`
	InitialChunkSize int  `mapstructure:"initial_chunk_size"`
	MaxZeroReads     int  `mapstructure:"max_zero_reads"`
	Strict           bool `mapstructure:"strict"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}
