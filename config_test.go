package lers

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfigPassesValidation(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"one state", func(c *Config) { c.MaxStates = 1 }, "MaxStates"},
		{"too many states", func(c *Config) { c.MaxStates = 1<<24 + 1 }, "MaxStates"},
		{"minimum states", func(c *Config) { c.MaxStates = 2 }, ""},
		{"shallow", func(c *Config) { c.MaxRecursionDepth = 9 }, "MaxRecursionDepth"},
		{"deep", func(c *Config) { c.MaxRecursionDepth = 100_001 }, "MaxRecursionDepth"},
		{"no prefilter", func(c *Config) { c.EnablePrefilter = false }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ConfigError should unwrap to ErrInvalidConfig")
			}
			if !strings.HasPrefix(err.Error(), "lers: invalid config: "+tt.wantField) {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestCompileWithConfig_RejectsInvalid(t *testing.T) {
	if _, err := CompileWithConfig("a", Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero Config: got %v", err)
	}
	if _, err := CompileManyWithConfig([]string{"a"}, Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero Config: got %v", err)
	}
}

func TestCompileWithConfig_Verbose(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Verbose = true
	config.LogOutput = &buf
	if _, err := CompileManyWithConfig([]string{"if", "else"}, config); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"=== compile many ===", "=== prefilter ===", "kind=literal", "complete=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	config.Verbose = false
	if _, err := CompileWithConfig("a*", config); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet compile logged:\n%s", buf.String())
	}
}
