// objcbridge CLI - diagnostics for the Objective-C bridging core
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/objcbridge/config"
	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

var log = commonlog.GetLogger("objcbridge.cmd")

func main() {
	configDir := flag.String("config", "", "Directory containing objcbridge.toml (default: search upward from the working directory)")
	verbose := flag.Bool("v", false, "Verbose output")
	strict := flag.Bool("strict", false, "Panic on type mismatches and registration failures")
	useSim := flag.Bool("sim", false, "Use the simulated runtime even where a native one exists")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: objcbridge [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  names [-n N] NAME           Print N generated class names for NAME\n")
		fmt.Fprintf(os.Stderr, "  selftest                    Exercise the bridge against the simulated runtime\n")
		fmt.Fprintf(os.Stderr, "  classes [-format F]         Register the demo delegate and dump the class cache (text, toml, cbor)\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.ConfigureLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := cfg.BridgeOptions()
	if *strict {
		opts = append(opts, objc.WithStrict(true))
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "names":
		err = runNames(newBridge(*useSim, opts), args[1:])
	case "selftest":
		err = runSelfTest(opts, *verbose)
	case "classes":
		err = runClasses(newBridge(*useSim, opts), args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(dir string) (*config.Config, error) {
	if dir != "" {
		return config.Load(dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.FindAndLoad(wd)
}

// newBridge binds to the native runtime when there is one.
func newBridge(useSim bool, opts []objc.Option) *objc.Bridge {
	if rt := objc.Platform(); rt != nil && !useSim {
		log.Info("using native runtime")
		return objc.New(rt, opts...)
	}
	log.Info("using simulated runtime")
	return objc.New(objcsim.New(), opts...)
}
