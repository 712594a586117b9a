package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"bertlv/log"

	"github.com/pkg/errors"
)

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Reader: ReaderConfig{
		MaxObjectSize:    64 * 1024 * 1024,
		InitialChunkSize: 16 * 1024,
		MaxZeroReads:     100,
		Strict:           false,
	},
}

const defaultConfigTemplateText = `# bertlv Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how encoded objects are assembled from the input stream.
[reader]
  # Sets the starting size, in bytes, for chunked content reads. Chunks
  # double from here, so truncated inputs fail before their full declared
  # length is ever allocated.
  initial_chunk_size = {{.Reader.InitialChunkSize}}

  # Sets the maximum size, in bytes, of one encoded object, header
  # octets included. Objects declaring more than this are rejected.
  max_object_size = {{.Reader.MaxObjectSize}}

  # Sets how many consecutive empty reads are tolerated from a source
  # that reports no error before the read is abandoned.
  max_zero_reads = {{.Reader.MaxZeroReads}}

  # Restricts input to DER framing by rejecting indefinite-length
  # values anywhere in the stream.
  strict = {{.Reader.Strict}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, "config.toml"), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, "config.toml"), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
