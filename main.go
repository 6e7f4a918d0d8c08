// Package main is the entry point for corpus-reduce.
// It delegates entirely to the cobra command tree in internal/cli -
// all business logic lives in internal/.
package main

import "github.com/bad33ndj3/corpus-reduce/internal/cli"

func main() {
	cli.Execute()
}
