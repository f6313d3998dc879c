package nutrition

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"adaptogen-scraper/lib/scrapers/adaptogen"
)

// ErrNoCollection means extraction was attempted before any product
// urls were collected, running a collect pass first is a hard
// precondition.
var ErrNoCollection = errors.New("no collected product urls, run a collect pass first")

// Collection maps a category name to the product urls collected under
// it, in first-seen order.
type Collection map[string][]string

func (c Collection) Total() int {
	total := 0
	for _, urls := range c {
		total += len(urls)
	}
	return total
}

// Categories lists the collection's category names sorted, Go maps
// have no stable iteration order.
func (c Collection) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SaveCollection(path string, collection Collection) error {
	if dir := filepath.Dir(path); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func LoadCollection(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCollection)
	}
	if err != nil {
		return nil, err
	}

	var collection Collection
	err = json.Unmarshal(data, &collection)
	if err != nil {
		return nil, err
	}
	return collection, nil
}

const collectedAtFormat = "2006-01-02 15:04:05"

var factsColumns = []string{
	"name", "url", "serving",
	"energy", "carbohydrates", "protein", "total_fat",
	"saturated_fat", "fiber", "sugars", "sodium",
	"collected_at", "category",
}

func formatNutrient(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SaveFacts writes one csv row per record under a fixed 13 column
// header.
func SaveFacts(path string, records []adaptogen.ProductFacts) error {
	if dir := filepath.Dir(path); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(factsColumns)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = w.Write([]string{
			r.Name,
			r.Url,
			r.Serving,
			formatNutrient(r.Energy),
			formatNutrient(r.Carbohydrates),
			formatNutrient(r.Protein),
			formatNutrient(r.TotalFat),
			formatNutrient(r.SaturatedFat),
			formatNutrient(r.Fiber),
			formatNutrient(r.Sugars),
			formatNutrient(r.Sodium),
			r.CollectedAt.Format(collectedAtFormat),
			r.Category,
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// OutputFile describes one file a previous run left on disk.
type OutputFile struct {
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// OutputFiles lists the json and csv files sitting in the configured
// output directories, most recently modified first.
func (s Service) OutputFiles() ([]OutputFile, error) {
	patterns := []string{
		filepath.Join(filepath.Dir(s.config.Collection), "*.json"),
		filepath.Join(filepath.Dir(s.config.Facts), "*.csv"),
	}

	var files []OutputFile
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			files = append(files, OutputFile{
				Path:       path,
				Size:       info.Size(),
				ModifiedAt: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

// CleanOutputs removes every file OutputFiles reports and returns the
// paths it removed. The run history database is left alone.
func (s Service) CleanOutputs() ([]string, error) {
	files, err := s.OutputFiles()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range files {
		err := os.Remove(f.Path)
		if err != nil {
			return removed, err
		}
		removed = append(removed, f.Path)
	}
	return removed, nil
}
