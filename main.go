package main

import "github/chapool/go-bitski/cmd"

func main() {
	cmd.Execute()
}
