package main

import "github.com/Digital-Shane/title-crawl/internal/cmd"

func main() {
	cmd.Execute()
}
