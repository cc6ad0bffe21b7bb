// Package main is the entry of the lifeboard command.
package main

import "github.com/sarchlab/lifeboard/lifeboard/cmd"

func main() {
	cmd.Execute()
}
