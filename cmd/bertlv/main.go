package main

import "bertlv/cmd/bertlv/cmd"

func main() {
	cmd.Execute()
}
