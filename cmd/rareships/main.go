package main

import "github.com/andrescamacho/rareships-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
