package main

import "github.com/theirongolddev/wisespend/cmd"

func main() {
	cmd.Execute()
}
