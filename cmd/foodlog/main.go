// Command foodlog manages food log entries from the command line.
package main

import "github.com/mesh-intelligence/foodlog/internal/cli"

func main() {
	cli.Execute()
}
