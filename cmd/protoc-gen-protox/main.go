// Command protoc-gen-protox is a protoc compiler plugin: it reads a
// serialized CodeGeneratorRequest from stdin and writes a serialized
// CodeGeneratorResponse to stdout, exactly as protoc's plugin protocol
// requires. Grounded on the teacher's root plugin.go/generator.go pairing
// of a thin main() around a Generator, with the TypeScript-plugin-specific
// bits replaced by generator.Generate.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/protox-go/protox/generator"
	"github.com/protox-go/protox/internal/plog"
	"github.com/protox-go/protox/pluginpb"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		plog.Errorf("protoc-gen-protox: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	req := pluginpb.CodeGeneratorRequestType.New()
	if err := req.FromBytes(data, true); err != nil {
		return fmt.Errorf("parsing request: %w", err)
	}

	resp, err := generator.Generate(req)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	encoded, err := resp.ToBytes()
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
