package main

import "inventory-system/cmd/inventoryctl/commands"

func main() {
	commands.Execute()
}
