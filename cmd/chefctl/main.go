// Command chefctl browses and edits recipes on a chef API server.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and turns a panic anywhere below it into a
// short message.
func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "Something went wrong. Please try again.")
			code = 2
		}
	}()

	root := newRootCmd(newApp(os.Stdin, os.Stdout))
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
