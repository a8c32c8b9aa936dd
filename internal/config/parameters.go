package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/brentq/internal/solver"
)

type Config struct {
	OutputDir string
	MakeDir   bool
	Problems  map[string]ProblemParameters

	// to reset per-problem defaults
	MaxIterations int
	Tolerance     float64
	Trace         bool
}

type ProblemParameters struct {
	Function      string // expression in x whose root is wanted
	Lower         float64
	Upper         float64
	MaxIterations int
	Tolerance     float64
	Trace         bool
}

// Load reads a problem set from configFileName (".toml" optional) and fills
// per-problem absences from the global section, then from the built-in
// defaults. Problems lacking Function, Lower or Upper are removed from the
// set and their names returned so the caller can report them.
func Load(configFileName string) (Config, []string, error) {
	var config Config
	name := strings.TrimSuffix(configFileName, ".toml")
	meta, err := toml.DecodeFile(name+".toml", &config)
	if err != nil {
		return Config{}, nil, err
	}
	skipped, err := resolve(&config, meta)
	return config, skipped, err
}

func resolve(config *Config, meta toml.MetaData) ([]string, error) {
	if len(config.Problems) == 0 {
		return nil, fmt.Errorf("no problems provided")
	}

	var skipped []string
	for name, problem := range config.Problems {
		if !meta.IsDefined("Problems", name, "Function") ||
			!meta.IsDefined("Problems", name, "Lower") ||
			!meta.IsDefined("Problems", name, "Upper") {
			delete(config.Problems, name)
			skipped = append(skipped, name)
			continue
		}
		if !meta.IsDefined("Problems", name, "MaxIterations") {
			if meta.IsDefined("MaxIterations") {
				problem.MaxIterations = config.MaxIterations
			} else {
				problem.MaxIterations = solver.DefaultMaxIter
			}
		}
		if !meta.IsDefined("Problems", name, "Tolerance") {
			if meta.IsDefined("Tolerance") {
				problem.Tolerance = config.Tolerance
			} else {
				problem.Tolerance = solver.DefaultTolerance
			}
		}
		if !meta.IsDefined("Problems", name, "Trace") {
			problem.Trace = config.Trace
		}
		config.Problems[name] = problem
	}

	if len(config.Problems) == 0 {
		return skipped, fmt.Errorf("no usable problems remain")
	}
	return skipped, nil
}
