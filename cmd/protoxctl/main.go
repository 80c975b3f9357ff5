// Command protoxctl is the manual-invocation counterpart to
// protoc-gen-protox: instead of being driven by protoc over stdin/stdout,
// it reads a previously captured CodeGeneratorRequest from a file, runs the
// same generator, and either writes the resulting files to disk (generate)
// or just reports what would happen (check). Grounded on rclone's cobra
// root-command layout and kr's colored CLI diagnostics.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/protox-go/protox/generator"
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/pluginpb"
	"github.com/protox-go/protox/pmessage"
)

var (
	requestPath string
	outDir      string
	verbose     bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "protoxctl",
		Short: "Inspect and drive the protox code generator outside of protoc",
	}
	root.PersistentFlags().StringVar(&requestPath, "request", "", "path to a serialized CodeGeneratorRequest")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print one line per generated file")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the generator and write its output files under --out",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&outDir, "out", ".", "directory generated files are written under")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run the generator without writing any files, reporting errors only",
		RunE:  runCheck,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print protoxctl's identification line",
		RunE:  runVersion,
	}

	root.AddCommand(generateCmd, checkCmd, versionCmd)
	return root
}

func loadRequest() (*pmessage.Message, error) {
	if requestPath == "" {
		return nil, perr.ValueError("--request is required")
	}
	f, err := os.Open(requestPath)
	if err != nil {
		return nil, perr.Wrap(err, "opening request file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, perr.Wrap(err, "reading request file")
	}

	req := pluginpb.CodeGeneratorRequestType.New()
	if err := req.FromBytes(data, true); err != nil {
		return nil, perr.Wrap(err, "parsing request file")
	}
	return req, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := loadRequest()
	if err != nil {
		return err
	}
	resp, err := generator.Generate(req)
	if err != nil {
		return err
	}
	if errMsg, _ := resp.Get("error"); errMsg != nil {
		if s, ok := errMsg.(string); ok && s != "" {
			return perr.ValueError("generator reported an error: %s", s)
		}
	}

	fileListVal, err := resp.Get("file")
	if err != nil {
		return err
	}
	list, ok := fileListVal.(interface {
		Len() int
		Get(int) interface{}
	})
	if !ok {
		return perr.ValueError("unexpected response shape: no file list")
	}

	for i := 0; i < list.Len(); i++ {
		genFile, ok := list.Get(i).(*pmessage.Message)
		if !ok {
			continue
		}
		name, _ := genFile.Get("name")
		content, _ := genFile.Get("content")
		nameStr, _ := name.(string)
		contentStr, _ := content.(string)
		if nameStr == "" {
			continue
		}
		dest := filepath.Join(outDir, nameStr)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return perr.Wrap(err, "creating output directory for %q", nameStr)
		}
		if err := os.WriteFile(dest, []byte(contentStr), 0o644); err != nil {
			return perr.Wrap(err, "writing %q", dest)
		}
		if verbose {
			color.New(color.FgGreen).Printf("wrote %s\n", dest)
		}
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	req, err := loadRequest()
	if err != nil {
		return err
	}
	resp, err := generator.Generate(req)
	if err != nil {
		return err
	}
	if errMsg, _ := resp.Get("error"); errMsg != nil {
		if s, ok := errMsg.(string); ok && s != "" {
			return perr.ValueError("generator reported an error: %s", s)
		}
	}
	color.New(color.FgGreen).Println("ok")
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Println("protoxctl (protox code generator CLI)")
	return nil
}
