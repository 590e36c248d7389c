package config

import (
	"fmt"

	"github.com/tliron/commonlog"
)

// LogLevel returns the configured commonlog level.
func (c *Config) LogLevel() (commonlog.Level, error) {
	switch c.Logging.Level {
	case "none":
		return commonlog.None, nil
	case "critical":
		return commonlog.Critical, nil
	case "error":
		return commonlog.Error, nil
	case "warning", "":
		return commonlog.Warning, nil
	case "notice":
		return commonlog.Notice, nil
	case "info":
		return commonlog.Info, nil
	case "debug":
		return commonlog.Debug, nil
	}
	return commonlog.None, fmt.Errorf("unknown log level %q", c.Logging.Level)
}

// ConfigureLogging applies the logging section to the commonlog backend.
// A backend must have been linked in (for example commonlog/simple).
func (c *Config) ConfigureLogging() error {
	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	var path *string
	if c.Logging.Path != "" {
		path = &c.Logging.Path
	}
	commonlog.Configure(0, path)
	commonlog.SetMaxLevel(level)
	return nil
}
