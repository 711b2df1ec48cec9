// Command calibdump lists registered calibration products and exports
// them as JSON, the same format LoadFromFile accepts. Exported files
// are the starting point for calibrating other strip brands.
package main

import (
	"flag"
	"fmt"
	"os"

	"strip-analyzer/internal/calibration"
	"strip-analyzer/internal/version"
)

func main() {
	product := flag.String("product", "", "Product name to export (empty lists all products)")
	out := flag.String("out", "", "Output JSON file (default stdout summary only)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("calibdump %s (built %s, commit %s)\n",
			version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *product == "" {
		fmt.Println("Registered calibration products:")
		for _, name := range calibration.ListProducts() {
			p := calibration.GetProduct(name)
			fmt.Printf("  %-12s type=%s bands=%d\n", name, p.Type, p.BandCount())
			for _, table := range p.Parameters {
				fmt.Printf("    %-18s %-12s unit=%-4q entries=%d\n",
					table.Key, table.Name, table.Unit, len(table.Entries))
			}
		}
		return
	}

	p := calibration.GetProduct(*product)
	if p == nil {
		fmt.Fprintf(os.Stderr, "Unknown product %q; run without -product to list\n", *product)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Fprintf(os.Stderr, "Specify -out <file> to export %s\n", *product)
		os.Exit(1)
	}
	if err := p.SaveToFile(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %s (%d parameters) to %s\n", p.Name(), p.BandCount(), *out)
}
