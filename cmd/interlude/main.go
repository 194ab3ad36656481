// Package main is the entry point for the interlude CLI.
//
// Usage:
//
//	interlude [flags] <command> [args]
//
// Commands:
//
//	mix        - Overlay a voice insert onto a song inside a time window
//	songify    - Turn spoken lyrics into a sung rendition
//	melody     - Render the songify melody for some lyrics
//	silence    - Write a silent WAV placeholder
//	probe      - Show duration, level and pitch of an audio file
//	config     - Show or initialize CLI settings
//	version    - Show version information
package main

import (
	"os"

	"github.com/haivivi/interlude/cmd/interlude/commands"
	"github.com/haivivi/interlude/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
