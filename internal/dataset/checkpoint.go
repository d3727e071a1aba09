package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type checkpointLine struct {
	Success bool `json:"success"`
	Data    struct {
		UUID         string `json:"uuid"`
		JudgeVerdict string `json:"judge_verdict"`
	} `json:"data"`
}

// LoadProcessed scans prior reformulation output files and returns the ids
// that already completed with a PASS verdict, so a rerun skips them.
// Malformed lines are ignored: a torn write from an interrupted run must
// not poison the whole checkpoint.
func LoadProcessed(outputDir string) (map[string]bool, error) {
	pattern := filepath.Join(outputDir, "reformulation_results*.jsonl")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad checkpoint pattern: %w", err)
	}

	processed := make(map[string]bool)
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open checkpoint '%s': %w", file, err)
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		for scanner.Scan() {
			var line checkpointLine
			if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
				continue
			}
			if line.Success && strings.EqualFold(line.Data.JudgeVerdict, "pass") && line.Data.UUID != "" {
				processed[line.Data.UUID] = true
			}
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read checkpoint '%s': %w", file, err)
		}
	}
	return processed, nil
}
