package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	recordkit "github.com/reoring/recordkit"
	"github.com/reoring/recordkit/declfile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "inspect":
		inspectCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "recordkit CLI\n\nUsage:\n  recordkit inspect -f decls.yaml [-format yaml|json]\n\nNotes:\n  - inspect loads a declaration file and prints each type's resolved field set.")
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var file string
	var format string
	fs.StringVar(&file, "f", "", "declaration file to load")
	fs.StringVar(&format, "format", "", "file format: yaml or json (default: by extension)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".json":
			format = "json"
		default:
			format = "yaml"
		}
	}

	var reg *declfile.Registry
	switch format {
	case "yaml":
		reg, err = declfile.ImportYAML(data)
	case "json":
		reg, err = declfile.ImportJSON(data)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", format)
		os.Exit(2)
	}
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}

	for _, name := range reg.Names() {
		t, _ := reg.Lookup(name)
		printType(t)
	}
}

func printType(t *recordkit.Type) {
	fmt.Println(t.Name())
	flds := t.Fields()
	if req := flds.Required(); len(req) > 0 {
		fmt.Printf("  required: %s\n", strings.Join(req, ", "))
	}
	if opt := flds.Optional(); len(opt) > 0 {
		parts := make([]string, len(opt))
		for i, f := range opt {
			d := f.Default
			if fac, ok := d.(recordkit.Factory); ok {
				d = fac()
			}
			parts[i] = fmt.Sprintf("%s=%v", f.Name, d)
		}
		fmt.Printf("  optional: %s\n", strings.Join(parts, ", "))
	}
	if t.Hashable() {
		fmt.Println("  hashable: true")
	}
}

func reportIssues(err error) {
	iss, ok := recordkit.AsIssues(err)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s at %s: %s", it.Code, it.Path, it.Message)
		if it.Hint != "" {
			fmt.Fprintf(os.Stderr, " (%s)", it.Hint)
		}
		fmt.Fprintln(os.Stderr)
	}
}
