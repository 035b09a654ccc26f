package binding

import (
	"io"

	"github.com/alexandria-dm/sirxml/xmlns"
)

// A Config holds the collaborators of a parse: the resolver that maps
// root tags to bindings, the parsing strategy, and optional validation
// and logging. Parsing does not modify a Config, so a single Config may
// be shared by concurrent parses once its options are set.
type Config struct {
	logger    Logger
	loglevel  int
	resolver  xmlns.Resolver
	strategy  Strategy
	fallback  string
	location  string
	validator Validator
}

// New returns a Config that resolves root elements with res. The
// Stream strategy is used unless another is selected with
// UseStrategy.
func New(res xmlns.Resolver, opts ...Option) *Config {
	cfg := &Config{resolver: res, strategy: Stream}
	cfg.Option(opts...)
	return cfg
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// The Option method applies the options in order and returns an
// Option that restores the setting changed by the last of them.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Strategy returns the strategy cfg parses documents with.
func (cfg *Config) Strategy() Strategy { return cfg.strategy }

// Types implementing the Logger interface can receive warnings and
// debug information from the parser. The Logger interface is
// implemented by *log.Logger and zerolog.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// A Validator checks a document against a schema. The Validate
// method of *xsd.Schema from github.com/jacoelho/xsd satisfies it.
type Validator interface {
	Validate(r io.Reader) error
}

// UseStrategy selects the strategy used to turn document text into a
// value. A nil Strategy selects Stream.
func UseStrategy(s Strategy) Option {
	return func(cfg *Config) Option {
		prev := cfg.strategy
		cfg.strategy = s
		if cfg.strategy == nil {
			cfg.strategy = Stream
		}
		return UseStrategy(prev)
	}
}

// FallbackNamespace sets the namespace in which root tags that carry
// no namespace are resolved.
func FallbackNamespace(uri string) Option {
	return func(cfg *Config) Option {
		prev := cfg.fallback
		cfg.fallback = uri
		return FallbackNamespace(prev)
	}
}

// LocationBase names the document being parsed. The name is included
// in syntax and validation errors.
func LocationBase(location string) Option {
	return func(cfg *Config) Option {
		prev := cfg.location
		cfg.location = location
		return LocationBase(prev)
	}
}

// ValidateWith checks each document against v once it has been
// decoded. A nil Validator disables validation.
func ValidateWith(v Validator) Option {
	return func(cfg *Config) Option {
		prev := cfg.validator
		cfg.validator = v
		return ValidateWith(prev)
	}
}

// LogOutput specifies an optional Logger for warnings and debug
// information about parsing.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log
// configured with the LogOutput option. The level parameter should
// be a positive integer between 1 and 5, with 5 providing the greatest
// verbosity.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}
