package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"git.lost.host/meutraa/pulse/internal/judge"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PULSE_"

// LoadWindows layers the judgement windows, lowest precedence first:
//  1. judge.DefaultWindows
//  2. the yaml file at path, when given
//  3. PULSE_PERFECT, PULSE_GOOD, PULSE_OK, PULSE_PERFECT_WINDOW
//
// envFile is loaded into the environment first if it exists, without
// replacing variables that are already set.
func LoadWindows(path, envFile string) (judge.Windows, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); nil != err && !errors.Is(err, fs.ErrNotExist) {
			return judge.Windows{}, fmt.Errorf("%w: %v: %w", ErrLoadConfig, envFile, err)
		}
	}

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); nil != err {
			return judge.Windows{}, fmt.Errorf("%w: %v: %w", ErrLoadConfig, path, err)
		}
	}

	// PULSE_PERFECT_WINDOW -> perfect_window
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); nil != err {
		return judge.Windows{}, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	w := judge.DefaultWindows()
	if err := k.UnmarshalWithConf("", &w, koanf.UnmarshalConf{Tag: "koanf"}); nil != err {
		return judge.Windows{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := w.Validate(); nil != err {
		return judge.Windows{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return w, nil
}
