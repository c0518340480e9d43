package reference

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	CareerDataFile    = "career_data.json"
	JobMarketDataFile = "job_market_data.json"
)

var (
	ErrInvalidDataset = errors.New("invalid reference dataset")
)

//go:embed data/*.json
var embeddedData embed.FS

//go:embed schema/*.json
var embeddedSchemas embed.FS

// Dataset is the immutable reference data shared by the scoring engines.
// It is safe for concurrent use; accessors return copies of the top-level
// slices.
type Dataset struct {
	careers []Career
	market  []MarketEntry
}

func (d *Dataset) Careers() []Career {
	if d == nil {
		return nil
	}
	out := make([]Career, len(d.careers))
	copy(out, d.careers)
	return out
}

func (d *Dataset) Market() []MarketEntry {
	if d == nil {
		return nil
	}
	out := make([]MarketEntry, len(d.market))
	copy(out, d.market)
	return out
}

// Load reads both reference files from dir, or the embedded copies when dir
// is empty.
func Load(dir string) (*Dataset, error) {
	read := func(name string) ([]byte, error) {
		if strings.TrimSpace(dir) == "" {
			return embeddedData.ReadFile("data/" + name)
		}
		return os.ReadFile(filepath.Join(dir, name))
	}

	careerJSON, err := read(CareerDataFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CareerDataFile, err)
	}
	marketJSON, err := read(JobMarketDataFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", JobMarketDataFile, err)
	}
	return Parse(careerJSON, marketJSON)
}

// Parse validates both documents against their schemas and decodes them.
func Parse(careerJSON, marketJSON []byte) (*Dataset, error) {
	if err := validate("career_data.schema.json", careerJSON); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, CareerDataFile, err)
	}
	if err := validate("job_market_data.schema.json", marketJSON); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, JobMarketDataFile, err)
	}

	var careers []Career
	if err := json.Unmarshal(careerJSON, &careers); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, CareerDataFile, err)
	}
	var market []MarketEntry
	if err := json.Unmarshal(marketJSON, &market); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, JobMarketDataFile, err)
	}

	return New(careers, market)
}

// New builds a Dataset from already decoded entries. Career paths must be
// unique.
func New(careers []Career, market []MarketEntry) (*Dataset, error) {
	if len(careers) == 0 {
		return nil, fmt.Errorf("%w: no career entries", ErrInvalidDataset)
	}

	seen := make(map[string]struct{}, len(careers))
	for _, c := range careers {
		key := strings.ToLower(strings.TrimSpace(c.Path))
		if key == "" {
			return nil, fmt.Errorf("%w: empty career path", ErrInvalidDataset)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate career path %q", ErrInvalidDataset, c.Path)
		}
		seen[key] = struct{}{}
	}

	d := &Dataset{
		careers: make([]Career, len(careers)),
		market:  make([]MarketEntry, len(market)),
	}
	copy(d.careers, careers)
	copy(d.market, market)
	return d, nil
}

func validate(schemaName string, doc []byte) error {
	schema, err := embeddedSchemas.ReadFile("schema/" + schemaName)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema violations: %s", strings.Join(errs, "; "))
	}
	return nil
}
