package main

import (
	"github.com/auracount/auracount/internal/cli"
)

func main() {
	cli.Execute()
}
