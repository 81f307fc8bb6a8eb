package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/factuurdesk/factuurdesk/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "seed-invoices",
		Description: "Seed generated invoices into Postgres",
		Run:         internal.SeedInvoices,
	},
	{
		Name:        "archive-invoices",
		Description: "Render and archive all issued invoices to S3",
		Run:         internal.ArchiveInvoices,
	},
	{
		Name:        "export-reports",
		Description: "Write the tax, revenue and aging CSV exports to disk",
		Run:         internal.ExportReports,
	},
}

func main() {
	var (
		listCommands  bool
		cmdName       string
		numInvoices   string
		rendersPerSec string
		year          string
		quarter       string
		outputDir     string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&numInvoices, "num-invoices", "", "Number of invoices to seed")
	flag.StringVar(&rendersPerSec, "renders-per-sec", "", "Rate limit for archiving")
	flag.StringVar(&year, "year", "", "Report year for exports")
	flag.StringVar(&quarter, "quarter", "", "Report quarter for exports")
	flag.StringVar(&outputDir, "output-dir", "", "Directory the exports are written to")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	for env, value := range map[string]string{
		"NUM_INVOICES":    numInvoices,
		"RENDERS_PER_SEC": rendersPerSec,
		"YEAR":            year,
		"QUARTER":         quarter,
		"OUTPUT_DIR":      outputDir,
	} {
		if value != "" {
			os.Setenv(env, value)
		}
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
