package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schema constrains a loaded configuration. Suffixes become part of
// runtime class names, so they must be identifier-safe.
const schema = `
#identifier: =~"^[A-Za-z_][A-Za-z0-9_]*$"

#Config: {
	bridge: {
		strict?:       bool | null
		debugSuffix:   #identifier
		releaseSuffix: #identifier
	}
	logging: {
		level: "none" | "critical" | "error" | "warning" | "notice" | "info" | "debug"
		path?: string
	}
}
`

// Validate checks c against the configuration schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	s := ctx.CompileString(schema)
	if err := s.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	def := s.LookupPath(cue.ParsePath("#Config"))

	v := ctx.Encode(c)
	if err := v.Err(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
