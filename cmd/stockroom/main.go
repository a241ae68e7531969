// Package main provides the stockroom CLI.
package main

import "github.com/mesh-intelligence/stockroom/internal/cli"

func main() {
	cli.Execute()
}
