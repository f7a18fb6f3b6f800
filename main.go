package main

import "github.com/jsphweid/scoretime/cmd"

func main() {
	cmd.Execute()
}
