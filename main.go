package main

import "github.com/KaramelBytes/onomast-cli/cmd"

func main() {
	cmd.Execute()
}
