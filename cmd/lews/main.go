// Command lews serves and runs lock-in early warning assessments.
//
// @title           Lock-in Early Warning Service API
// @version         1.0
// @description     Scores emerging animal-use technologies for lock-in risk and compares them with historical trajectories.
// @BasePath        /
package main

import (
	"os"
)

// Version is injected at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
