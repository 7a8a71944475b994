package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/milk9111/rockfall/levels"
)

func main() {
	outPath := flag.String("out", "levels/level.schema.json", "path to write the JSON schema")
	flag.Parse()

	if err := writeSchema(*outPath, buildSchema()); err != nil {
		log.Fatalf("levelschema: %v", err)
	}
	log.Printf("levelschema: wrote %s", *outPath)
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(levels.Level))
	schema.Title = "rockfall level"
	schema.Description = "Tile map with flagged layers and spawn entities, read from levels/*.json"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
