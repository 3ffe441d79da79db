// cmd/main.go
package main

import cmd "github.com/mwiater/benchlog/cmd/benchlogcli"

// main starts the benchlog CLI by delegating to the cobra root command
// defined in the benchlogcli package.
func main() {
	cmd.Execute()
}
