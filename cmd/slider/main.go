package main

import "github.com/k1LoW/slider/cmd"

func main() {
	cmd.Execute()
}
