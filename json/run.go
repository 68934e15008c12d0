package json

import (
	"fmt"

	"github.com/fwojciec/mfm"
)

// runDTO is the JSON representation of a Run with a type discriminator.
type runDTO struct {
	Type  string   `json:"type"`
	Text  *string  `json:"text,omitempty"`
	Style *string  `json:"style,omitempty"`
	URL   *string  `json:"url,omitempty"`
	Runs  []runDTO `json:"runs,omitempty"`
}

func marshalRuns(runs []mfm.Run) ([]runDTO, error) {
	if len(runs) == 0 {
		return nil, nil
	}
	result := make([]runDTO, len(runs))
	for i, r := range runs {
		dto, err := marshalRun(r)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		result[i] = dto
	}
	return result, nil
}

func marshalRun(r mfm.Run) (runDTO, error) {
	switch v := r.(type) {
	case mfm.TextRun:
		return runDTO{Type: "text", Text: &v.Text}, nil
	case mfm.SpanRun:
		inner, err := marshalRuns(v.Runs)
		if err != nil {
			return runDTO{}, err
		}
		style := v.Style.String()
		return runDTO{Type: "span", Style: &style, Runs: inner}, nil
	case mfm.LinkRun:
		inner, err := marshalRuns(v.Runs)
		if err != nil {
			return runDTO{}, err
		}
		return runDTO{Type: "link", URL: &v.URL, Runs: inner}, nil
	case mfm.BlockRun:
		inner, err := marshalRuns(v.Runs)
		if err != nil {
			return runDTO{}, err
		}
		style := v.Style.String()
		return runDTO{Type: "block", Style: &style, Runs: inner}, nil
	default:
		return runDTO{}, fmt.Errorf("unknown run type: %T", r)
	}
}

func unmarshalRuns(dtos []runDTO) ([]mfm.Run, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	result := make([]mfm.Run, len(dtos))
	for i, dto := range dtos {
		r, err := unmarshalRun(dto)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		result[i] = r
	}
	return result, nil
}

func unmarshalRun(dto runDTO) (mfm.Run, error) {
	if dto.Type == "text" {
		var text string
		if dto.Text != nil {
			text = *dto.Text
		}
		return mfm.TextRun{Text: text}, nil
	}
	inner, err := unmarshalRuns(dto.Runs)
	if err != nil {
		return nil, err
	}
	switch dto.Type {
	case "span", "block":
		if dto.Style == nil {
			return nil, fmt.Errorf("%s run without style", dto.Type)
		}
		style, err := mfm.ParseStyle(*dto.Style)
		if err != nil {
			return nil, err
		}
		if dto.Type == "block" {
			return mfm.BlockRun{Style: style, Runs: inner}, nil
		}
		return mfm.SpanRun{Style: style, Runs: inner}, nil
	case "link":
		var url string
		if dto.URL != nil {
			url = *dto.URL
		}
		return mfm.LinkRun{URL: url, Runs: inner}, nil
	default:
		return nil, fmt.Errorf("unknown run type: %q", dto.Type)
	}
}
