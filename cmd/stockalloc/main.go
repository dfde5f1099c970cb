package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stockalloc/pkg/interfaces/cli/commands"
)

func main() {
	// Optional .env file for defaults; missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)

	// Command line flags
	var (
		inputFile = flags.String("input", "", "Path to inventory export workbook")
		salesFile = flags.String("sales", "", "Path to sales report workbook")
		configFile = flags.String(
			"config",
			os.Getenv("STOCKALLOC_CONFIG"),
			"Path to JSON settings file",
		)
		outputDir = flags.String(
			"output",
			envDefault("STOCKALLOC_OUTPUT", "output"),
			"Output directory for transfer documents",
		)
		source         = flags.String("source", "stock", "Source pool: stock or photo")
		threshold      = flags.Int("threshold", -1, "Balance threshold override")
		articleTypes   = flags.String("types", "", "Article types to process (comma separated)")
		collections    = flags.String("collections", "", "Collections to process (comma separated)")
		extraNames     = flags.String("names", "", "Additional names to process (comma separated)")
		format         = flags.String("format", "text", "Output format: text, json")
		execute        = flags.Bool("execute", false, "Write transfer documents")
		updateWorkbook = flags.Bool("update-workbook", false, "Write an updated inventory workbook")
		verbose        = flags.Bool("verbose", false, "Enable verbose output")
		help           = flags.Bool("help", false, "Show help message")
	)

	if err := flags.Parse(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create command configuration
	config := commands.Config{
		InputFile:      *inputFile,
		SalesFile:      *salesFile,
		ConfigFile:     *configFile,
		OutputDir:      *outputDir,
		Source:         *source,
		Threshold:      *threshold,
		ArticleTypes:   *articleTypes,
		Collections:    *collections,
		ExtraNames:     *extraNames,
		Format:         *format,
		Execute:        *execute,
		UpdateWorkbook: *updateWorkbook,
		Verbose:        *verbose,
		Help:           *help,
	}

	// Create and execute command
	ctx := context.Background()
	var err error

	switch command {
	case "distribute":
		err = commands.NewDistributeCommand(config).Execute(ctx)
	case "balance":
		err = commands.NewBalanceCommand(config).Execute(ctx)
	case "config-init":
		err = commands.NewConfigInitCommand(config).Execute(ctx)
	case "help", "-help", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`stockalloc - retail inventory allocation tool

USAGE:
    stockalloc <command> [OPTIONS]

COMMANDS:
    distribute     Push units from a pool to stores with zero stock
    balance        Move surplus above the threshold to partners or the pool
    config-init    Write the built-in settings to a JSON file

Run 'stockalloc <command> -help' for command options.`)
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
