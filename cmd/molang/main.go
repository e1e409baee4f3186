// Command molang evaluates a single Molang expression or statement
// program against an empty runtime context and prints its result.
//
// Grounds on std/compiler/main.go's hand-parsed os.Args (no flags
// library) and original_source/src/main.rs's argv-joined-source,
// print-float-or-error-with-exit-1 contract.
package main

import (
	"fmt"
	"os"
	"strings"

	"j5.nz/molang/internal/molang"
	"j5.nz/molang/internal/value"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <expression>\n", os.Args[0])
		os.Exit(1)
	}
	source := strings.Join(os.Args[1:], " ")

	ctx := value.NewStore()
	result, err := molang.Evaluate(source, ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(result)
}
