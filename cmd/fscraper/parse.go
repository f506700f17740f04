package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/sink"
)

var parseCmd = &cobra.Command{
	Use:   "parse <batch.json|batch.yaml|->",
	Short: "Assemble a record from a saved batch of text blocks and print it as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := readBatch(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		rec, err := extract.NewAssembler(nil).Assemble(batch)
		if err != nil {
			return err
		}
		out, err := sink.EncodeYAML(rec)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// readBatch decodes a batch file; "-" reads JSON from stdin
func readBatch(path string, stdin io.Reader) (*extract.Batch, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var batch extract.Batch
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &batch)
	default:
		err = json.Unmarshal(data, &batch)
	}
	if err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", path, err)
	}
	return &batch, nil
}
