package main

import "vault-export/cmd"

func main() {
	cmd.Execute()
}
