package main

import "github.com/mserban/scena/internal/cli"

func main() {
	cli.Execute()
}
