package main

import (
	"github.com/hmori/dopabalance/internal/cli"
)

func main() {
	cli.Execute()
}
