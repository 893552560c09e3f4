// cmd/localmind/main.go
package main

import (
	cmd "github.com/localmind/localmind/internal/cli"
)

// main starts the localmind CLI application by delegating to the
// cobra root command defined in the localmind package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
