package main

import (
	"os"

	"github.com/awnumar/memguard"
	"github.com/ragingtiger/amznbot/cmd"
	"github.com/ragingtiger/amznbot/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		logger.MustNamed("main").Errorw("amznbot failed", "error", err)
	}
	logger.Sync()
	memguard.Purge()
	if err != nil {
		os.Exit(1)
	}
}
