package main

import "github.com/SlpAus/reaction-records-backend/internal/cli"

func main() {
	cli.Execute()
}
