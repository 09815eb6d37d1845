package main

import (
	"fmt"
	"os"

	"github.com/maxkimambo/boardsync/cmd"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
)

func main() {
	// LOG_MODE/LOG_FORMAT apply until the config is loaded
	logger.Setup(logger.Options{})

	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, boarderrors.FormatForCLI(err))
		os.Exit(1)
	}
}
