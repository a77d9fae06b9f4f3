package main

import (
	"fmt"
	"log"
	"os"

	"appiconset/config"
	"appiconset/generator"
)

func main() {
	dir := config.DefaultOutputDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	manifestName := generator.DefaultManifestName
	if len(os.Args) > 2 {
		manifestName = os.Args[2]
	}

	fmt.Printf("Checking %s/%s\n", dir, manifestName)

	problems, err := generator.Verify(dir, manifestName)
	if err != nil {
		log.Fatalf("Verify failed: %v", err)
	}

	if len(problems) == 0 {
		fmt.Println("✅ Icon set is complete")
		return
	}

	for _, p := range problems {
		fmt.Printf("  ✗ %s\n", p)
	}
	fmt.Printf("%d problem(s) found\n", len(problems))
	os.Exit(1)
}
