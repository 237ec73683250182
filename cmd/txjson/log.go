package main

import (
	"github.com/casparnet/caspad/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXJS")
