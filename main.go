package main

import "github.com/jfmyers9/dzr/cmd"

func main() {
	cmd.Execute()
}
