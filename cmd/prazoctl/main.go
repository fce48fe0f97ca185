// prazoctl is the command-line entry point for prazo-engine.
package main

import "github.com/jurisdesk/prazo-engine/internal/interfaces/cli"

func main() {
	cli.Execute()
}
