// Command hamarc packs, lists, and unpacks files from a Hamming-coded
// archive container.
package main

import (
	"fmt"
	"os"

	"github.com/javi11/hamarc"
	"github.com/javi11/hamarc/hamming"
	"github.com/javi11/hamarc/internal/cliflags"
)

func main() {
	if err := run(os.Args[0], os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hamarc: %v\n", err)
		os.Exit(1)
	}
}

func run(progName string, args []string) error {
	p := cliflags.NewParser(progName)
	create := p.BoolFlag("create", "c", "create a new archive", false)
	list := p.BoolFlag("list", "l", "list archive contents", false)
	extract := p.BoolFlag("extract", "x", "extract files from the archive", false)
	appendMode := p.BoolFlag("append", "a", "append files to the archive", false)
	del := p.BoolFlag("delete", "d", "delete files from the archive", false)
	concat := p.BoolFlag("concatenate", "A", "concatenate archives together", false)
	help := p.BoolFlag("help", "h", "show usage and exit", false)
	file := p.StringFlag("file", "f", "archive path", "")
	dataBits := p.IntFlag("hamming-data-bits", "D", "Hamming data bits (k)", 8)
	parityBits := p.IntFlag("hamming-parity-bits", "P", "Hamming parity bits (r)", 4)

	if err := p.Parse(args); err != nil {
		return err
	}
	if *help {
		fmt.Print(p.Usage())
		return nil
	}

	modes := 0
	for _, m := range []bool{*create, *list, *extract, *appendMode, *del, *concat} {
		if m {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("exactly one of -c/-l/-x/-a/-d/-A must be given")
	}

	opts := hamming.Options{DataBits: *dataBits, ParityBits: *parityBits}
	if !opts.WellFormed() {
		fmt.Fprintf(os.Stderr, "hamarc: warning: data bits %d with parity bits %d is not a well-formed Hamming code\n", *dataBits, *parityBits)
	}

	positionals := p.Positionals()

	switch {
	case *create:
		if *file == "" || len(positionals) == 0 {
			return fmt.Errorf("create requires -f <archive> and at least one input file")
		}
		return hamarc.Create(*file, opts, positionals)
	case *list:
		if *file == "" {
			return fmt.Errorf("list requires -f <archive>")
		}
		listing, err := hamarc.List(*file)
		if err != nil {
			return err
		}
		for _, l := range listing {
			fmt.Println(hamarc.FormatListing(l))
		}
		return nil
	case *extract:
		if *file == "" {
			return fmt.Errorf("extract requires -f <archive>")
		}
		return hamarc.Extract(*file, opts, positionals)
	case *appendMode:
		if *file == "" || len(positionals) == 0 {
			return fmt.Errorf("append requires -f <archive> and at least one input file")
		}
		return hamarc.Append(*file, opts, positionals)
	case *del:
		if *file == "" || len(positionals) == 0 {
			return fmt.Errorf("delete requires -f <archive> and at least one file name")
		}
		return hamarc.Delete(*file, positionals)
	case *concat:
		if *file == "" || len(positionals) < 2 {
			return fmt.Errorf("concatenate requires -f <target> and at least two source archives")
		}
		return hamarc.Concatenate(*file, positionals)
	}
	return nil
}
