package main

import (
	"github.com/gobrains/brains/internal/cli"
)

func main() {
	cli.Execute()
}
