package main

import "sheet-sync/cmd"

func main() {
	cmd.Execute()
}
