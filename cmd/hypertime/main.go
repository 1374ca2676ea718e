package main

import "github.com/sarchlab/hypertime/cmd/hypertime/cmd"

func main() {
	cmd.Execute()
}
