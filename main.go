package main

import "github.com/sagardabas0007/private-markets/cmd"

func main() {
	cmd.Execute()
}
