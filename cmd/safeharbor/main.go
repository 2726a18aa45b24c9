package main

import "github.com/ppiankov/safeharbor/internal/cli"

func main() {
	cli.Execute()
}
