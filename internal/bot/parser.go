package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/services"
)

var flagPattern = regexp.MustCompile(`--(\w+)\s+`)

// knownFlags are the optional /comp flags; anything else is ignored so a
// typo'd flag degrades to defaults instead of failing the command
var knownFlags = map[string]bool{
	"fee":       true,
	"condition": true,
	"beds":      true,
	"baths":     true,
	"sqft":      true,
	"year":      true,
	"mao":       true,
}

// ParseCommand turns the free-form text after /comp into the same typed
// request the HTTP endpoint consumes. Missing flags are left zero so the
// service applies its documented defaults; numeric flags that fail to
// parse surface a ParseError.
func ParseCommand(text string) (services.RunCompsRequest, error) {
	text = strings.TrimSpace(text)
	flags := extractFlags(text)

	address := text
	if locs := flagPattern.FindStringIndex(text); locs != nil {
		address = text[:locs[0]]
	}
	address = strings.TrimSuffix(strings.TrimSpace(address), ",")
	if address == "" {
		return services.RunCompsRequest{}, errors.InvalidInput("address is required", nil)
	}

	req := services.RunCompsRequest{
		Address:       address,
		Condition:     strings.ToLower(flags["condition"]),
		HighlightTier: strings.ToLower(flags["mao"]),
	}

	var err error
	if req.AssignmentFee, err = parseIntFlag("fee", flags["fee"]); err != nil {
		return services.RunCompsRequest{}, err
	}
	over := &req.SubjectOverrides
	if v, err := parseIntFlag("beds", flags["beds"]); err != nil {
		return services.RunCompsRequest{}, err
	} else {
		over.Beds = int(v)
	}
	if v, err := parseFloatFlag("baths", flags["baths"]); err != nil {
		return services.RunCompsRequest{}, err
	} else {
		over.Baths = v
	}
	if v, err := parseIntFlag("sqft", flags["sqft"]); err != nil {
		return services.RunCompsRequest{}, err
	} else {
		over.SqFt = int(v)
	}
	if v, err := parseIntFlag("year", flags["year"]); err != nil {
		return services.RunCompsRequest{}, err
	} else {
		over.Year = int(v)
	}

	return req, nil
}

// extractFlags collects "--key value" pairs; a flag's value runs until the
// next flag or end of text
func extractFlags(text string) map[string]string {
	out := make(map[string]string)
	matches := flagPattern.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		key := strings.ToLower(text[m[2]:m[3]])
		if !knownFlags[key] {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out[key] = strings.TrimSpace(text[m[1]:end])
	}
	return out
}

func parseIntFlag(name, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	// Accept "20000.0" style input the same as the fee examples
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ParseError("flag --"+name+" must be a number, got "+value, err)
	}
	return int64(f), nil
}

func parseFloatFlag(name, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ParseError("flag --"+name+" must be a number, got "+value, err)
	}
	return f, nil
}
