package main

import (
	"os"

	"github.com/ledgerkit/txledger/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Default to pretty console logger; cmd switches to JSON on --log-format=json
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cmd.Execute()
}
