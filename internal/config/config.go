// Package config reads the YAML definition of a verified input form and
// the server around it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/verifiedinput"
	"github.com/pthm/verifiedinput/hx"
)

var (
	// ErrNoFields is returned when a form defines no fields.
	ErrNoFields = errors.New("form has no fields")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrInvalidField is returned when a field definition is unusable.
	ErrInvalidField = errors.New("invalid field")
)

// Environment variables read by Load.
const (
	EnvKey    = "VERIFIEDINPUT_KEY"
	EnvConfig = "VERIFIEDINPUT_CONFIG"
)

// DefaultPath is read when neither a flag nor EnvConfig names a file.
const DefaultPath = "verifiedinput.yaml"

// DefaultAddr is the listen address when server.addr is unset.
const DefaultAddr = ":8080"

// Server configures the HTTP server.
type Server struct {
	Addr string `yaml:"addr,omitempty"`
	// Key signs and encrypts component props. Empty means a random key per
	// process.
	Key string `yaml:"key,omitempty"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// Field is one verified input. Pointer options distinguish "unset" from
// false so that defaults can be applied.
type Field struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Type        string `yaml:"type"`
	// Value is the initial value, text or number.
	Value any `yaml:"value,omitempty"`

	Max        *float64 `yaml:"max,omitempty"`
	MinEnabled bool     `yaml:"min_enabled,omitempty"`
	Min        float64  `yaml:"min,omitempty"`
	Integer    *bool    `yaml:"integer,omitempty"`
	ShowArrow  *bool    `yaml:"show_arrow,omitempty"`
	ZeroStart  bool     `yaml:"zero_start,omitempty"`

	EnableValidation bool     `yaml:"enable_validation,omitempty"`
	Predicate        string   `yaml:"predicate,omitempty"`
	PredicateArgs    []string `yaml:"predicate_args,omitempty"`

	ErrorMessage      string `yaml:"error_message,omitempty"`
	ErrorMessageClass string `yaml:"error_message_class,omitempty"`
	ErrorInputClass   string `yaml:"error_input_class,omitempty"`

	ShowPassword bool   `yaml:"show_password,omitempty"`
	Disabled     bool   `yaml:"disabled,omitempty"`
	StartIcon    string `yaml:"start_icon,omitempty"`
	EndIcon      string `yaml:"end_icon,omitempty"`
}

// Form is the set of fields served together.
type Form struct {
	Title string `yaml:"title,omitempty"`
	// Description is markdown.
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

// Config is the whole file.
type Config struct {
	Server Server `yaml:"server,omitempty"`
	Log    Log    `yaml:"log,omitempty"`
	Form   Form   `yaml:"form"`
}

// ResolvePath picks the config file: the flag value, then EnvConfig, then
// DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and validates the file at path. EnvKey overrides server.key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(verifiedinput.NewPredicates()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if key := os.Getenv(EnvKey); key != "" {
		c.Server.Key = key
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Form.Fields {
		f := &c.Form.Fields[i]
		if f.Type == "" {
			f.Type = string(verifiedinput.ModeText)
		}
	}
}

// Validate checks every field against preds.
func (c *Config) Validate(preds *verifiedinput.Predicates) error {
	if len(c.Form.Fields) == 0 {
		return ErrNoFields
	}

	seen := make(map[string]bool, len(c.Form.Fields))
	for i, f := range c.Form.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidField, i)
		}
		if f.Name == hx.PropsParam {
			return fmt.Errorf("%w: %q", ErrInvalidField, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = true

		if _, err := f.Options(preds); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidField, f.Name, err)
		}
	}
	return nil
}

// Field returns the field called name.
func (c *Config) Field(name string) (Field, bool) {
	for _, f := range c.Form.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Options builds the widget options, resolving the predicate in preds.
func (f Field) Options(preds *verifiedinput.Predicates) (verifiedinput.Options, error) {
	o, err := f.widgetOptions()
	if err != nil {
		return verifiedinput.Options{}, err
	}
	p, err := preds.Lookup(f.Predicate, f.PredicateArgs...)
	if err != nil {
		return verifiedinput.Options{}, err
	}
	o.Predicate = p
	return o, nil
}

func (f Field) widgetOptions() (verifiedinput.Options, error) {
	mode, err := verifiedinput.ParseMode(f.Type)
	if err != nil {
		return verifiedinput.Options{}, err
	}

	opts := []verifiedinput.Option{verifiedinput.WithLeadingZero(f.ZeroStart)}
	if f.Max != nil {
		opts = append(opts, verifiedinput.WithMax(*f.Max))
	}
	if f.MinEnabled {
		opts = append(opts, verifiedinput.WithMin(f.Min))
	}
	if f.Integer != nil {
		opts = append(opts, verifiedinput.WithInteger(*f.Integer))
	}
	if f.ShowArrow != nil {
		opts = append(opts, verifiedinput.WithArrow(*f.ShowArrow))
	}
	if f.ShowPassword {
		opts = append(opts, verifiedinput.WithReveal())
	}

	o := verifiedinput.NewOptions(mode, opts...)
	o.EnableValidation = f.EnableValidation
	return o, nil
}

// Props builds the component props for the field. The predicate travels
// by name.
func (f Field) Props() hx.InputProps {
	o, err := f.widgetOptions()
	if err != nil {
		// Keep the bad mode so hydration reports it.
		o.Mode = verifiedinput.Mode(f.Type)
	}

	p := hx.NewInputProps(f.Name, f.Value, o)
	p.Label = f.Label
	p.Placeholder = f.Placeholder
	p.Predicate = f.Predicate
	p.PredicateArgs = f.PredicateArgs
	p.ErrorMessage = f.ErrorMessage
	p.ErrorMessageClass = f.ErrorMessageClass
	p.ErrorInputClass = f.ErrorInputClass
	p.Disabled = f.Disabled
	p.StartIcon = f.StartIcon
	p.EndIcon = f.EndIcon
	return p
}

// FormProps builds the component props for the whole form.
func (c *Config) FormProps() hx.FormProps {
	fields := make([]hx.InputProps, len(c.Form.Fields))
	for i, f := range c.Form.Fields {
		fields[i] = f.Props()
	}
	return hx.FormProps{Title: c.Form.Title, Fields: fields}
}
