package main

import "github.com/RyanBlaney/jingle-scan/cmd"

func main() {
	cmd.Execute()
}
