// Command xmlcat parses an XML file and prints it back out, optionally
// pretty-printed, exercising the package's BOM detection and serializer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/xmldomgo/xmldom"
)

func main() {
	pretty := flag.Bool("pretty", false, "pretty-print the serialized output")
	validate := flag.Bool("validate", false, "enable attribute/name validation while parsing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xmlcat [-pretty] [-validate] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	var opts []xmldom.Option
	if *validate {
		opts = append(opts, xmldom.WithValidate())
	}
	doc := xmldom.NewDocument(opts...)
	if err := doc.LoadFromFile(path); err != nil {
		slog.Error("parse failed", "file", path, "error", err)
		os.Exit(1)
	}
	if err := doc.Save(os.Stdout, *pretty); err != nil {
		slog.Error("write failed", "error", err)
		os.Exit(1)
	}
	fmt.Println()
}
