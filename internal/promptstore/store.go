// Package promptstore loads the static categorized prompt set. Each category
// lives in its own JSON file (<dir>/<category>.json) holding an array of
// {id, role, content} objects.
package promptstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidbz/promptbench/internal/domain"
)

// ErrCategoryNotFound indicates a category's prompt file does not exist.
var ErrCategoryNotFound = errors.New("prompt category file not found")

// LoadCategory reads all prompts of one category. The category name is
// attached to every returned prompt.
func LoadCategory(dir, category string) ([]domain.Prompt, error) {
	path := filepath.Join(dir, category+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, path)
		}
		return nil, fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}

	var prompts []domain.Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(prompts))
	for i := range prompts {
		if prompts[i].ID == "" {
			return nil, fmt.Errorf("prompt %d in %s has an empty id", i, path)
		}
		if seen[prompts[i].ID] {
			return nil, fmt.Errorf("duplicate prompt id %q in %s", prompts[i].ID, path)
		}
		seen[prompts[i].ID] = true

		if prompts[i].Role == "" {
			prompts[i].Role = "user"
		}
		prompts[i].Category = category
	}

	return prompts, nil
}

// LoadAll reads prompts for the given categories in order. Categories whose
// file is missing are skipped so a partial prompt set still runs; the caller
// is expected to log the gap.
func LoadAll(dir string, categories []string) ([]domain.Prompt, []string, error) {
	var all []domain.Prompt
	var missing []string

	for _, category := range categories {
		prompts, err := LoadCategory(dir, category)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				missing = append(missing, category)
				continue
			}
			return nil, nil, err
		}
		all = append(all, prompts...)
	}

	return all, missing, nil
}
