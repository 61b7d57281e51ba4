package main

import "github.com/memoprint/memoprint/cmd"

func main() {
	cmd.Execute()
}
