package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hanpama/reactivegraphql/internal/eventbus"
	"github.com/hanpama/reactivegraphql/internal/otel"
	"github.com/hanpama/reactivegraphql/internal/schema"
	"github.com/hanpama/reactivegraphql/internal/server"
	"github.com/hanpama/reactivegraphql/internal/stream"
)

const rootUsage = `reactivegraphql — reactive GraphQL engine & tools

USAGE:
  reactivegraphql <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL endpoint over a JSON data file
  validate         Parse & validate a GraphQL SDL schema
  print-sdl        Print the canonical rendering of a schema
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -graphql.schema <file>     GraphQL SDL schema file (required)
  -graphql.data <file>       JSON file holding the root value (default: none)
  -graphql.poll <duration>   Re-read the data file at this interval and push
                             changes into running operations. 0 disables
                             polling (default: 0)
  -server.addr <addr>        HTTP listen address (default: :8080)
  -server.pretty             Pretty-print JSON responses
  -server.timeout <duration> Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>   Max request body size. 0 means unlimited
  -server.cors-origin <o>    Allowed CORS origin. Repeatable; use * for any
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: reactivegraphql)
`

const validateUsage = `validate FLAGS:
  -graphql.schema <file>  GraphQL SDL schema file (required)
  (Exits non-zero on errors)
`

const printSDLUsage = `print-sdl FLAGS:
  -graphql.schema <file>  GraphQL SDL schema file (required)
  -out <file>             Write rendered SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("reactivegraphql", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	case "print-sdl":
		return cmdPrintSDL(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "validate":
		fmt.Print(validateUsage)
	case "print-sdl":
		fmt.Print(printSDLUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdServe(args []string) error {
	schemaFile := ""
	dataFile := ""
	poll := time.Duration(0)
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(0)
	otelEndpoint := ""
	otelService := "reactivegraphql"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "graphql.schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&dataFile, "graphql.data", dataFile, "JSON file holding the root value")
	fs.DurationVar(&poll, "graphql.poll", poll, "Data file poll interval")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.Var(&corsOrigins, "server.cors-origin", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-graphql.schema is required")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}

	var root any
	if dataFile != "" {
		raw, value, err := loadData(dataFile)
		if err != nil {
			return err
		}
		if poll > 0 {
			subject := stream.NewBehaviorSubject[any](value)
			go pollData(dataFile, poll, raw, subject)
			root = subject
		} else {
			root = value
		}
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	if root != nil {
		sopts = append(sopts, server.WithRootValue(root))
	}
	h, err := server.New(sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("GraphQL server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func cmdValidate(args []string) error {
	schemaFile := ""
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "graphql.schema", schemaFile, "GraphQL SDL schema file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, validateUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, validateUsage)
		return fmt.Errorf("-graphql.schema is required")
	}
	if _, err := loadSchema(schemaFile); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", schemaFile)
	return nil
}

func cmdPrintSDL(args []string) error {
	schemaFile := ""
	outFile := ""
	fs := flag.NewFlagSet("print-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "graphql.schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&outFile, "out", outFile, "Write rendered SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printSDLUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, printSDLUsage)
		return fmt.Errorf("-graphql.schema is required")
	}
	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}

func loadSchema(path string) (*schema.Schema, error) {
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl), nil)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func loadData(path string) ([]byte, any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read data: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, nil, fmt.Errorf("parse data: %w", err)
	}
	return raw, value, nil
}

// pollData re-reads the data file on each tick and pushes the parsed value
// when the raw bytes changed. Running operations pick the change up live.
func pollData(path string, interval time.Duration, last []byte, subject *stream.Subject[any]) {
	for range time.Tick(interval) {
		raw, value, err := loadData(path)
		if err != nil {
			log.Printf("poll %s: %v", path, err)
			continue
		}
		if bytes.Equal(raw, last) {
			continue
		}
		last = raw
		subject.Next(value)
	}
}
