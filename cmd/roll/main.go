package main

import (
	"context"
	"flag"
	"log"
	"os"

	rollcmd "github.com/louisbranch/solo.space/internal/cmd/roll"
)

// main rolls one table and prints the result.
func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ROLL] ")

	if err := rollcmd.Run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("roll: %v", err)
	}
}
