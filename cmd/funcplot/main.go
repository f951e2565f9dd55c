package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	cmdUtils "funcplot/pkg/cmd-utils"
	"funcplot/pkg/config"
)

var (
	verbose     = flag.Bool("v", false, "Turn on verbose output")
	veryVerbose = flag.Bool("vv", false, "Turn on very verbose output")
	configPath  = flag.String("config", "", "TOML configuration file")
	outputPath  = flag.String("o", "", "Chart file, - for stdout (default plot-<haiku>.png)")
	samples     = flag.Int("n", 0, "Number of samples (default 1000)")
	preview     = flag.Bool("preview", false, "Print a text preview of the chart")
)

func setLogLevel() {
	log.SetLevel(log.InfoLevel)

	if *verbose {
		log.SetLevel(log.DebugLevel)
		log.Debug("Set log level to debug")
	}

	if *veryVerbose {
		log.SetLevel(log.TraceLevel)
		log.Debug("Set log level to trace")
	}
}

// loadConfig applies the flags over the defaults or the config file.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
		log.Debugf("loaded config from %s", *configPath)
	}

	if *samples != 0 {
		cfg.Samples = *samples
	}
	if *outputPath != "" {
		cfg.Output = *outputPath
	}
	if *preview {
		cfg.Preview = true
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	setLogLevel()

	cfg, err := loadConfig()
	if err != nil {
		cmdUtils.LogFatalError("Failed to load configuration: ", err)
	}

	// keep stdout clean when the chart itself goes there
	out := os.Stdout
	if cfg.Output == "-" {
		out = os.Stderr
	}
	prompter := newPrompter(out)

	s := &session{prompter: prompter, out: out, cfg: cfg, newRenderer: chartRenderer}
	err = s.run()
	prompter.Close()
	if err != nil {
		cmdUtils.LogFatalError("Failed to read input: ", err)
	}
}
