// Command catalogctl is the operator tool for a catalog's record store.
package main

import "github.com/princeprakhar/device-catalog/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
