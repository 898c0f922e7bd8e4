package main

import (
	"fmt"
	"os"

	"github.com/joeydtaylor/quill/pkg/builder"
)

// Prints the encoding detected for each file argument and a preview of its text.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: decode <file>...")
		os.Exit(2)
	}

	for _, path := range os.Args[1:] {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		text, enc := builder.DecodeTextWithEncoding(raw)
		preview := []rune(text)
		if len(preview) > 60 {
			preview = preview[:60]
		}
		fmt.Printf("%s\t%s\t%d runes\t%q\n", path, enc, len([]rune(text)), string(preview))
	}
}
