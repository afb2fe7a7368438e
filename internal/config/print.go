package config

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"
)

const redactedValue = "[redacted]"

// Print writes the effective configuration as YAML with secrets redacted.
func Print(w io.Writer, cfg *Config) error {
	printable := *cfg
	if printable.Settings.DictionaryAPIKey != "" {
		printable.Settings.DictionaryAPIKey = redactedValue
	}

	out, err := yaml.MarshalWithOptions(printable, durationEncoder())
	if err != nil {
		return fmt.Errorf("config: marshal yaml: %w", err)
	}

	_, err = w.Write(out)
	return err
}

func durationEncoder() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](func(d time.Duration) ([]byte, error) {
		return yaml.Marshal(d.String())
	})
}
