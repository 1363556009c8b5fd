// Command scenarioctl validates and inspects scenario definition documents.
package main

import (
	"os"

	"github.com/kbukum/scenariokit/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Get(serviceName).WithError(err).Error("command failed")
		os.Exit(1)
	}
}
