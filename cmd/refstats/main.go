package main

import "github.com/pfrederiksen/referee-stats/internal/cli"

func main() {
	cli.Execute()
}
