// Package cli holds the flag and logging setup shared by the galaxy commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ogier/pflag"

	"galaxy/internal/galaxy"
)

// Config is the command-line state common to every command. Parameters are
// layered: defaults, then the preset file, then GALAXY_* variables, then
// flags.
type Config struct {
	Preset  string
	Verbose bool

	fs        *pflag.FlagSet
	LookupEnv func(string) (string, bool)
}

// Bind registers --preset, --verbose and one flag per galaxy parameter on fs.
func Bind(fs *pflag.FlagSet) *Config {
	c := &Config{fs: fs, LookupEnv: os.LookupEnv}
	fs.StringVarP(&c.Preset, "preset", "p", "", "JSON preset file")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "debug logging")

	def := galaxy.DefaultParams()
	for _, f := range galaxy.Fields {
		usage := fmt.Sprintf("%s (env %s)", f.Usage, f.Env())
		if f.IsBool() {
			fs.Bool(f.Flag(), f.Get(&def) == "true", usage)
		} else {
			fs.String(f.Flag(), f.Get(&def), usage)
		}
	}
	return c
}

// Parse parses args into fs. Long flags take their value either as
// --name=value or as the following argument.
func Parse(fs *pflag.FlagSet, args []string) error {
	return fs.Parse(joinLongValues(fs, args))
}

type boolFlag interface {
	IsBoolFlag() bool
}

// joinLongValues rewrites "--name value" to "--name=value" for every known
// non-boolean long flag, stopping at "--".
func joinLongValues(fs *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		s := args[i]
		if s == "--" {
			return append(out, args[i:]...)
		}
		if !strings.HasPrefix(s, "--") || strings.Contains(s, "=") || i+1 == len(args) {
			out = append(out, s)
			continue
		}
		fl := fs.Lookup(s[2:])
		if fl == nil {
			out = append(out, s)
			continue
		}
		if b, ok := fl.Value.(boolFlag); ok && b.IsBoolFlag() {
			out = append(out, s)
			continue
		}
		out = append(out, s+"="+args[i+1])
		i++
	}
	return out
}

// Params builds the parameter set from Preset, the environment and the
// flags given on the command line.
func (c *Config) Params() (galaxy.Params, error) {
	return c.Load(c.Preset)
}

// Load is Params for an explicit preset path; an empty path skips the file.
// It can be used as a preset.Loader, so reloads keep env and flag overrides.
func (c *Config) Load(path string) (galaxy.Params, error) {
	p := galaxy.DefaultParams()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return p, fmt.Errorf("open preset: %w", err)
		}
		p, err = galaxy.DecodeParams(f, p)
		f.Close()
		if err != nil {
			return p, fmt.Errorf("%s: %w", path, err)
		}
	}

	var errs []error
	if err := p.ApplyEnv(c.LookupEnv); err != nil {
		errs = append(errs, err)
	}
	byFlag := make(map[string]galaxy.Field, len(galaxy.Fields))
	for _, f := range galaxy.Fields {
		byFlag[f.Flag()] = f
	}
	c.fs.Visit(func(fl *pflag.Flag) {
		f, ok := byFlag[fl.Name]
		if !ok {
			return
		}
		if err := f.Set(&p, fl.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", fl.Name, err))
		}
	})
	return p, errors.Join(errs...)
}

// Logger returns a text logger on stderr, at debug level with Verbose.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
