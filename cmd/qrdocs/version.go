package main

import "fmt"

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "qrdocs %s\n", version)
	return nil
}
