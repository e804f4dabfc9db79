package main

import "github.com/kidandcat/diametrics/internal/cli"

func main() {
	cli.Execute()
}
