package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/indexkit/indexkit"
	"github.com/indexkit/indexkit/internal"
	"go.uber.org/zap"
)

func runIndex(args []string) error {
	flags := flag.NewFlagSet("index", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		zap.S().Info("Usage: indexctl index [options]")
		zap.S().Info("")
		zap.S().Info("Options:")
		flags.PrintDefaults()
	}

	schemaDir := flags.String("schema-dir", "schemas", "Directory containing *.schema.json files")
	indexPath := flags.String("index", "index.db", "Path to the index file")
	schemaName := flags.String("schema", "", "Schema name the documents belong to")
	inputFile := flags.String("input", "", "JSON file holding a document object or an array of documents")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *schemaName == "" || *inputFile == "" {
		return fmt.Errorf("both -schema and -input must be provided")
	}

	store, err := openStore(*schemaDir, *indexPath)
	if err != nil {
		return err
	}
	defer store.Close()

	documents, err := readDocuments(*inputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, fields := range documents {
		record := &indexkit.DataRecord{Schema: *schemaName, Fields: fields}
		if err := store.Add(ctx, record); err != nil {
			return err
		}
	}

	zap.S().Infow("indexed documents", "schema", *schemaName, "count", len(documents), "index", *indexPath)
	return nil
}

func runQuery(args []string) error {
	flags := flag.NewFlagSet("query", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		zap.S().Info("Usage: indexctl query [options]")
		zap.S().Info("")
		zap.S().Info("Options:")
		flags.PrintDefaults()
	}

	schemaDir := flags.String("schema-dir", "schemas", "Directory containing *.schema.json files")
	indexPath := flags.String("index", "index.db", "Path to the index file")
	schemaName := flags.String("schema", "", "Schema name to query")
	field := flags.String("field", "", "Base field name to match")
	value := flags.String("value", "", "Value to match; parsed as number or boolean when possible")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *schemaName == "" || *field == "" {
		return fmt.Errorf("both -schema and -field must be provided")
	}

	store, err := openStore(*schemaDir, *indexPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(context.Background(), *schemaName, *field, tryParseValue(*value))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	zap.S().Infow("query finished", "schema", *schemaName, "field", *field, "hits", len(records))
	return nil
}

func runSchemas(args []string) error {
	flags := flag.NewFlagSet("schemas", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		zap.S().Info("Usage: indexctl schemas [options]")
		zap.S().Info("")
		zap.S().Info("Options:")
		flags.PrintDefaults()
	}

	schemaDir := flags.String("schema-dir", "schemas", "Directory containing *.schema.json files")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	registry, err := internal.NewFileSchemaRegistry(*schemaDir)
	if err != nil {
		return err
	}

	for _, name := range registry.ListSchemas() {
		fmt.Println(name)
	}
	return nil
}

func openStore(schemaDir, indexPath string) (indexkit.IndexStore, error) {
	schemas, err := internal.NewFileSchemaRegistry(schemaDir)
	if err != nil {
		return nil, err
	}
	return internal.NewBoltIndex(indexPath, schemas, indexkit.DefaultTypeRegistry())
}

func readDocuments(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	var many []map[string]any
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one map[string]any
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("input must be a JSON object or array of objects: %w", err)
	}
	return []map[string]any{one}, nil
}

// tryParseValue mirrors how JSON would have typed the literal: integers and
// floats become numbers, true/false become booleans, everything else stays a
// string.
func tryParseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
