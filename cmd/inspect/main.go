package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/csgtools/csd-inspect/engine"
	"github.com/csgtools/csd-inspect/inspect"
	"github.com/csgtools/csd-inspect/registry"
	"github.com/csgtools/csd-inspect/simtarget"
)

const demoImage = "demo"

func main() {
	var (
		varName     = flag.String("var", "", "Demo variable to inspect")
		list        = flag.Bool("list", false, "List demo variables and exit")
		wasmFile    = flag.String("wasm", "", "Attach a wasm image and report on it")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		inspect.SetLogger(logger)
		registry.SetLogger(logger)
		engine.SetLogger(logger)
	}

	if *wasmFile != "" {
		if err := attach(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !*list && *varName == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -list")
		fmt.Fprintln(os.Stderr, "       inspect -var <name>")
		fmt.Fprintln(os.Stderr, "       inspect -wasm <file.wasm>")
		fmt.Fprintln(os.Stderr, "       inspect -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*varName, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(varName string, listOnly bool) error {
	w := simtarget.NewWorld()
	reg := registry.New()
	reg.Register(demoImage, w.Syms)

	if listOnly {
		fmt.Println("Demo variables:")
		for _, name := range w.RootNames() {
			v, _ := w.Root(name)
			r, err := reg.Inspect(demoImage, v)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", name, err)
			}
			line := "  " + name
			if r != nil && r.Summary() != "" {
				line += " = " + r.Summary()
			}
			fmt.Println(line)
		}
		return nil
	}

	v, ok := w.Root(varName)
	if !ok {
		return fmt.Errorf("no demo variable %q (try -list)", varName)
	}

	r, err := reg.Inspect(demoImage, v)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", varName, err)
	}
	if r == nil {
		fmt.Printf("%s: no inspection support for this type\n", varName)
		return nil
	}

	if r.Summary() != "" {
		fmt.Printf("%s = %s\n", varName, r.Summary())
	}
	seq := r.Children()
	for c, ok := seq.Next(); ok; c, ok = seq.Next() {
		fmt.Printf("  %s = %s\n", c.Label, c.Value.Format())
	}
	if err := seq.Err(); err != nil {
		return fmt.Errorf("traverse %s: %w", varName, err)
	}
	return nil
}

func attach(wasmFile string) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	target, err := engine.New(ctx, data)
	if err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	defer target.Close(ctx)

	fmt.Printf("Image: %s\n", wasmFile)
	fmt.Printf("Linear memory: %d bytes\n", target.MemorySize())
	fmt.Println("Attached OK. Accessor calls need type metadata; see engine.Target.Symbols.")
	return nil
}
