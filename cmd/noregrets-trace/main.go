package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"plugin"
	"strings"

	"github.com/go-noregrets/noregrets/hostbridge"
	"github.com/go-noregrets/noregrets/modelfile"
	"github.com/go-noregrets/noregrets/pathtree"
)

//go:embed doc.go
var doc string

var (
	outputFlag            = flag.String("output", "", "write the model to this file instead of stdout")
	compressFlag          = flag.Bool("compress", true, "apply structural-hash compression to the traced model")
	compressPolicyFlag    = flag.String("compress-policy", "loose", "compression policy for -compress: loose or strict")
	testFrameworkModeFlag = flag.Bool("test-framework-mode", false, "treat the client plugin as a describe/it test suite")
)

func usage() {
	_, after, _ := strings.Cut(doc, "/*\n")
	body, _, _ := strings.Cut(after, "*/")
	io.WriteString(flag.CommandLine.Output(), body+`
Flags:

`)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("noregrets-trace: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	providerPath, clientPath := flag.Arg(0), flag.Arg(1)

	policy, err := parseCompressPolicy(*compressPolicyFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	provider, err := loadProvider(providerPath)
	if err != nil {
		log.Fatalf("loading provider plugin: %v", err)
	}

	reg := hostbridge.NewRegistry()
	reg.Register(*provider)

	var tree *pathtree.Tree
	if *testFrameworkModeFlag {
		program, err := loadTestProgram(clientPath)
		if err != nil {
			log.Fatalf("loading client plugin: %v", err)
		}
		results, t, err := hostbridge.RunSuite(reg, nil, program)
		if err != nil {
			log.Fatalf("running test suite: %v", err)
		}
		for _, r := range results {
			if r.Err != nil {
				log.Printf("case %s/%s failed: %v", r.Suite, r.Case, r.Err)
			}
		}
		tree = t
	} else {
		client, err := loadClient(clientPath)
		if err != nil {
			log.Fatalf("loading client plugin: %v", err)
		}
		t, err := hostbridge.Run(reg, nil, client)
		if err != nil {
			log.Printf("client returned an error: %v", err)
		}
		tree = t
	}

	if *compressFlag {
		tree.Compress(policy)
	}

	model := modelfile.FromTree(provider.Name, provider.Version, tree)
	data, err := model.Encode()
	if err != nil {
		log.Fatalf("encoding model: %v", err)
	}

	if *outputFlag == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outputFlag, data, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *outputFlag, err)
	}
}

func parseCompressPolicy(s string) (pathtree.Policy, error) {
	switch s {
	case "loose":
		return pathtree.Loose, nil
	case "strict":
		return pathtree.Strict, nil
	default:
		return 0, fmt.Errorf("invalid -compress-policy %q: want loose or strict", s)
	}
}

func loadProvider(path string) (*hostbridge.Provider, error) {
	sym, err := lookupPlugin(path, "Provider")
	if err != nil {
		return nil, err
	}
	p, ok := sym.(*hostbridge.Provider)
	if !ok {
		return nil, fmt.Errorf("%s: Provider has type %T, want *hostbridge.Provider", path, sym)
	}
	return p, nil
}

func loadClient(path string) (hostbridge.Client, error) {
	sym, err := lookupPlugin(path, "Client")
	if err != nil {
		return nil, err
	}
	c, ok := sym.(*hostbridge.Client)
	if !ok {
		return nil, fmt.Errorf("%s: Client has type %T, want *hostbridge.Client", path, sym)
	}
	return *c, nil
}

func loadTestProgram(path string) (func(*hostbridge.Harness), error) {
	sym, err := lookupPlugin(path, "Program")
	if err != nil {
		return nil, err
	}
	p, ok := sym.(*func(*hostbridge.Harness))
	if !ok {
		return nil, fmt.Errorf("%s: Program has type %T, want *func(*hostbridge.Harness)", path, sym)
	}
	return *p, nil
}

func lookupPlugin(path, symbol string) (plugin.Symbol, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return p.Lookup(symbol)
}
