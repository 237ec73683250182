package ldb

import (
	"github.com/casparnet/caspad/infrastructure/logger"
)

var log = logger.RegisterSubSystem("LDB")
