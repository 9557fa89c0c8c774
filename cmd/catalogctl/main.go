// catalogctl is a read-only maintenance CLI for the catalog content
// store. It builds the same service the server uses (from environment
// plus flags) and prints listings as JSON, which makes it handy for
// spotting corrupt records that the public catalog silently hides.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/rentgear/catalog/pkg/rentcatalog/config"
)

func main() {
	var (
		productsDir = pflag.String("products-dir", "", "directory of product documents (overrides PRODUCTS_DIR)")
		imagesDir   = pflag.String("images-dir", "", "directory of product image sets (overrides IMAGES_DIR)")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <list|catalog|get SLUG>\n\nFlags:\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() < 1 {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(config.WithEnv(), func(c *config.ServerConfig) error {
		if *productsDir != "" {
			c.ProductsDir = *productsDir
		}
		if *imagesDir != "" {
			c.ImagesDir = *imagesDir
		}
		return nil
	})
	if err != nil {
		fatal("failed to load configuration: %v", err)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		fatal("failed to build service: %v", err)
	}

	ctx := context.Background()

	switch pflag.Arg(0) {
	case "list":
		entries, err := svc.ListProducts(ctx)
		if err != nil {
			fatal("list failed: %v", err)
		}
		printJSON(entries)

	case "catalog":
		entries, err := svc.ListCatalog(ctx)
		if err != nil {
			fatal("catalog failed: %v", err)
		}
		printJSON(entries)

	case "get":
		if pflag.NArg() < 2 {
			fatal("get requires a slug argument")
		}
		product, err := svc.GetProduct(ctx, pflag.Arg(1))
		if err != nil {
			fatal("get failed: %v", err)
		}
		printJSON(product)

	default:
		pflag.Usage()
		os.Exit(2)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
