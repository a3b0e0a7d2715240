package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagEpsilon = flag.Float64("epsilon", 0, "Tolerance for zero and equality tests")
	flagWorkers = flag.Int("workers", -1, "Concurrent ray casts (0 = one per CPU)")
	flagDepth   = flag.Int("depth", -1, "KD-tree depth bound")
	flagCull    = flag.Bool("cull", false, "Ignore back-facing triangles when casting rays")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Unset flags keep
// the file or default value.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagEpsilon != 0 {
		cfg.Math.Epsilon = *flagEpsilon
	}
	if *flagWorkers >= 0 {
		cfg.Picking.Workers = *flagWorkers
	}
	if *flagDepth >= 0 {
		cfg.Picking.KDTreeDepth = *flagDepth
	}
	if *flagCull {
		cfg.Picking.CullBackFaces = true
	}
}
