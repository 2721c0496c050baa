package main

import "github.com/naka-gawa/grass-reporter/cmd"

func main() {
	cmd.Execute()
}
