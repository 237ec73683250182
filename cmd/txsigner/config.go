package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/casparnet/caspad/infrastructure/logger"
)

type configFlags struct {
	Transaction string `long:"transaction" short:"t" description:"Unsigned transaction in HEX format" required:"true"`
	PrivateKey  string `long:"private-key" short:"p" description:"Private key in HEX format" required:"true"`
	LogFile     string `long:"logfile" description:"File to write the log to. Requires --errlogfile"`
	ErrLogFile  string `long:"errlogfile" description:"File to write warnings and errors to. Requires --logfile"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Set log level {trace, debug, info, warn, error, critical}"`
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if (cfg.LogFile == "") != (cfg.ErrLogFile == "") {
		return nil, errors.New("--logfile and --errlogfile must be given together")
	}

	if cfg.LogFile != "" {
		logger.InitLog(cfg.LogFile, cfg.ErrLogFile)
	} else {
		logger.InitLogStdout(logger.LevelTrace)
	}
	if cfg.DebugLevel != "" {
		err := logger.ParseAndSetLogLevels(cfg.DebugLevel)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
