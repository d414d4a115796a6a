// Command tsedit runs syntax-aware refactoring commands on TypeScript and
// JavaScript files.
package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp()
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, a.styles.failure("Error: "+err.Error()))
		os.Exit(1)
	}
}
