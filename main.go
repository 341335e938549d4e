package main

import "github.com/oracle-samples/oce-gallery-cli/cmd"

func main() {
	cmd.Execute()
}
