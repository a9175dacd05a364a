package main

import (
	"fmt"
	"os"

	"github.com/rqpush/rqpush/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rqpush:", err)
		os.Exit(1)
	}
}
