package main

import (
	"os"

	"github.com/hamed0406/netprobe/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.TCP, os.Args[1:], os.Stdout, os.Stderr))
}
