package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Errorf("failed to set up logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "index":
		if err := runIndex(os.Args[2:]); err != nil {
			sugar.Fatalf("index: %v", err)
		}
	case "query":
		if err := runQuery(os.Args[2:]); err != nil {
			sugar.Fatalf("query: %v", err)
		}
	case "schemas":
		if err := runSchemas(os.Args[2:]); err != nil {
			sugar.Fatalf("schemas: %v", err)
		}
	default:
		sugar.Errorf("unknown command %q", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	logger := zap.S()
	logger.Info("Usage: indexctl <command> [options]")
	logger.Info("")
	logger.Info("Commands:")
	logger.Info("  index     Ingest JSON documents into an index file")
	logger.Info("  query     Run an exact-match term query against an index file")
	logger.Info("  schemas   List the schemas declared in a schema directory")
}
