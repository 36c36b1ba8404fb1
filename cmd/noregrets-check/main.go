package main

import (
	_ "embed"
	"flag"
	"io"
	"log"
	"os"
	"plugin"
	"strings"

	"github.com/go-noregrets/noregrets/hostbridge"
	"github.com/go-noregrets/noregrets/libver"
	"github.com/go-noregrets/noregrets/modelfile"
	"github.com/go-noregrets/noregrets/modeltree"
	"github.com/go-noregrets/noregrets/replayer"
	"github.com/go-noregrets/noregrets/reportlog"
)

//go:embed doc.go
var doc string

var (
	outputFlag = flag.String("output", "", "write the report to this file instead of stdout")
	formatFlag = flag.String("format", "text", "report format: text, json, md, or html")
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
	log.SetPrefix("noregrets-check: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	modelPath, providerPath := flag.Arg(0), flag.Arg(1)

	format := reportlog.Format(*formatFlag)
	switch format {
	case reportlog.Text, reportlog.JSON, reportlog.Markdown, reportlog.HTML:
	default:
		log.Fatalf("invalid -format %q: want text, json, md, or html", *formatFlag)
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		log.Fatalf("reading model: %v", err)
	}
	model, err := modelfile.Decode(data)
	if err != nil {
		log.Fatalf("decoding model: %v", err)
	}

	tree, err := modeltree.Build(model)
	if err != nil {
		log.Fatalf("reconstructing model tree: %v", err)
	}

	provider, err := loadProvider(providerPath)
	if err != nil {
		log.Fatalf("loading provider plugin: %v", err)
	}
	library, err := provider.New()
	if err != nil {
		log.Fatalf("constructing library under test: %v", err)
	}

	findings := replayer.New(tree).Run(library)

	report := reportlog.Report{
		Library:         model.Library,
		RecordedVersion: model.LibraryVersion,
		ActualVersion:   provider.Version,
		VersionRelation: libver.Annotate(model.LibraryVersion, provider.Version).Relation,
		Findings:        findings,
	}

	rendered, err := reportlog.Render(format, report)
	if err != nil {
		log.Fatalf("rendering report: %v", err)
	}

	if *outputFlag == "" {
		os.Stdout.Write(rendered)
		return
	}
	if err := os.WriteFile(*outputFlag, rendered, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *outputFlag, err)
	}
}

func loadProvider(path string) (*hostbridge.Provider, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup("Provider")
	if err != nil {
		return nil, err
	}
	provider, ok := sym.(*hostbridge.Provider)
	if !ok {
		return nil, &pluginTypeError{path: path, got: sym}
	}
	return provider, nil
}

type pluginTypeError struct {
	path string
	got  any
}

func (e *pluginTypeError) Error() string {
	return e.path + ": Provider has an unexpected type, want *hostbridge.Provider"
}
