package main

import "github.com/insightdelivered/techmarket/internal/cli"

func main() {
	cli.Execute()
}
