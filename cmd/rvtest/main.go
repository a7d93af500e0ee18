package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rvgo/rvtest/env"
	"github.com/rvgo/rvtest/expand"
	"github.com/rvgo/rvtest/lint"
)

type defines []string

func (d *defines) String() string {
	return strings.Join(*d, ",")
}

func (d *defines) Set(value string) error {
	*d = append(*d, value)
	return nil
}

func main() {
	var template string
	var output string
	var check bool
	var list bool
	var verbose bool
	var define defines

	flag.StringVar(&template, "c", "", "test template to expand")
	flag.StringVar(&output, "o", "-", "expanded assembly output")
	flag.BoolVar(&check, "l", false, "report convention findings on stderr")
	flag.BoolVar(&list, "list", false, "list the environment macros and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(&define, "D", "predefine an equate as NAME=VALUE (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	testenv := env.VirtualSingleCore()

	if list {
		fmt.Print(testenv.String())
		return
	}

	if len(template) == 0 {
		log.Fatalf("%v: no template to expand (-c)", os.Args[0])
	}

	inf, err := os.Open(template)
	if err != nil {
		log.Fatalf("%v: %v", template, err)
	}
	defer inf.Close()

	ex := &expand.Expander{
		Env:     testenv,
		Verbose: verbose,
	}
	for _, def := range define {
		name, value, found := strings.Cut(def, "=")
		if !found {
			log.Fatalf("%v: -D %v: expected NAME=VALUE", os.Args[0], def)
		}
		ex.Predefine(name, value)
	}

	prog, err := ex.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", template, err)
	}

	if check {
		for _, finding := range lint.Check(prog) {
			fmt.Fprintf(os.Stderr, "%v: %v\n", template, finding)
		}
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if _, err = prog.WriteTo(ouf); err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
