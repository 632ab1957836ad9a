package main

import "github.com/example/examprep/cmd"

func main() {
	cmd.Execute()
}
