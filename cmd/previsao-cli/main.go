package main

import "previsao/cmd/previsao-cli/cmd"

func main() {
	cmd.Execute()
}
