// main.go
package main

import (
	"context"
	"os"

	"github.com/sfi2k7/bczip/cmd"
	"github.com/sfi2k7/bczip/internal/job"
)

func main() {
	streams := job.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := cmd.Execute(context.Background(), os.Args[1:], streams); err != nil {
		os.Exit(1)
	}
}
