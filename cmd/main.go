package main

import (
	cmd "github.com/kerbaras/storytime/cmd/storytime"
)

func main() {
	cmd.Execute()
}
