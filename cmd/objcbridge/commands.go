package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chazu/objcbridge/appkit"
	"github.com/chazu/objcbridge/objc"
	"github.com/chazu/objcbridge/snapshot"
)

func runNames(b *objc.Bridge, args []string) error {
	fs := flag.NewFlagSet("names", flag.ExitOnError)
	n := fs.Int("n", 1, "Number of names to generate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: objcbridge names [-n N] NAME")
	}
	for range *n {
		fmt.Println(b.GenerateClassName(fs.Arg(0)))
	}
	return nil
}

func runClasses(b *objc.Bridge, args []string) error {
	fs := flag.NewFlagSet("classes", flag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, toml, cbor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range []string{"NSObject", "NSString", "NSNotification", "NSApplication"} {
		if _, err := b.LookUpClass(name); err != nil {
			return err
		}
	}
	if _, err := appkit.DelegateClass(b); err != nil {
		return err
	}

	snap := snapshot.Take(b)
	switch *format {
	case "text":
		return snap.WriteText(os.Stdout)
	case "toml":
		return snap.WriteTOML(os.Stdout)
	case "cbor":
		data, err := snap.MarshalCBOR()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return fmt.Errorf("unknown format %q", *format)
}
