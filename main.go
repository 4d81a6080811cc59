package main

import "github.com/naka-gawa/github-loc/cmd"

func main() {
	cmd.Execute()
}
