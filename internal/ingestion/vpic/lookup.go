package vpic

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultImportLimit caps how many models ModelsForMake returns
const DefaultImportLimit = 10

// Lookup fetches the models of makeName and returns the entry whose Model_Name
// equals model exactly, as reported by vPIC.
func (c *Client) Lookup(ctx context.Context, makeName, model string) (Vehicle, error) {
	makeName = strings.TrimSpace(makeName)
	model = strings.TrimSpace(model)
	if makeName == "" || model == "" {
		return Vehicle{}, ErrMissingInput
	}

	resp, err := c.GetModelsForMake(ctx, makeName)
	if err != nil {
		return Vehicle{}, err
	}
	return MatchModel(resp.Results, model)
}

// MatchModel picks the first result whose model name equals model.
func MatchModel(results []MakeModel, model string) (Vehicle, error) {
	if len(results) == 0 {
		return Vehicle{}, ErrUnknownMake
	}
	for _, r := range results {
		if r.ModelName == model {
			return Vehicle{Make: r.MakeName, Model: r.ModelName}, nil
		}
	}
	return Vehicle{}, ErrUnknownModel
}

// ModelsForMake returns at most limit capitalized make/model pairs in the
// order vPIC returned them. limit <= 0 means DefaultImportLimit.
func (c *Client) ModelsForMake(ctx context.Context, makeName string, limit int) ([]Vehicle, error) {
	makeName = strings.TrimSpace(makeName)
	if makeName == "" {
		return nil, ErrMissingInput
	}

	resp, err := c.GetModelsForMake(ctx, makeName)
	if err != nil {
		return nil, err
	}
	return Normalize(resp.Results, limit)
}

// Normalize keeps the first limit results and capitalizes their names.
func Normalize(results []MakeModel, limit int) ([]Vehicle, error) {
	if len(results) == 0 {
		return nil, ErrUnknownMake
	}
	if limit <= 0 {
		limit = DefaultImportLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	vehicles := make([]Vehicle, 0, len(results))
	for _, r := range results {
		vehicles = append(vehicles, Vehicle{
			Make:  Capitalize(r.MakeName),
			Model: Capitalize(r.ModelName),
		})
	}
	return vehicles, nil
}

// Capitalize upper-cases the first letter and lower-cases the rest ("FIAT" -> "Fiat").
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
