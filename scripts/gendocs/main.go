// Package main generates markdown documentation for the declint CLI and its
// lint rules from the command tree and the rule registry.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=rules -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, rules, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	validGenFlags := map[string]bool{"cli": true, "rules": true, "all": true}
	if !validGenFlags[*genFlag] {
		log.Fatalf("unknown -gen value: %s (use: cli, rules, all)", *genFlag)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if err := run(*genFlag, *outDirFlag, projectRoot); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// run generates the requested docs. outDir only applies to a single
// generator; "all" always writes under projectRoot/docs.
func run(gen, outDir, projectRoot string) error {
	dirFor := func(name string) string {
		if outDir != "" && gen != "all" {
			return outDir
		}
		return filepath.Join(projectRoot, "docs", name)
	}

	if gen == "cli" || gen == "all" {
		if err := generateCLIDocs(dirFor("cli")); err != nil {
			return fmt.Errorf("failed to generate CLI docs: %w", err)
		}
	}
	if gen == "rules" || gen == "all" {
		if err := generateRuleDocs(dirFor("rules")); err != nil {
			return fmt.Errorf("failed to generate rule docs: %w", err)
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
