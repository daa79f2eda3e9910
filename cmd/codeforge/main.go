package main

import "github.com/lexcodex/codeforge/app/cmd"

func main() {
	cmd.Execute()
}
