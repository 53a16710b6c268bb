package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// AnalysisResult is the match analysis computed by the backend.
// Fields the backend omits or sends with an unexpected type keep their zero value.
type AnalysisResult struct {
	Suitable        bool    `mapstructure:"suitable" json:"suitable"`
	MatchPercentage float64 `mapstructure:"matchPercentage" json:"matchPercentage"`

	RankedPhrases        []string `mapstructure:"ranked_phrases" json:"ranked_phrases,omitempty"`
	NounKeywords         []string `mapstructure:"noun_keywords" json:"noun_keywords,omitempty"`
	NERKeywords          []string `mapstructure:"ner_keywords" json:"ner_keywords,omitempty"`
	MatchingNounKeywords []string `mapstructure:"matching_noun_keywords" json:"matching_noun_keywords,omitempty"`
	MatchingNERKeywords  []string `mapstructure:"matching_ner_keywords" json:"matching_ner_keywords,omitempty"`

	// Raw is the decoded response body as returned by the backend.
	Raw map[string]any `mapstructure:"-" json:"-"`
}

// MatchingKeywords returns matched requirement keywords without duplicates, noun chunks first.
func (r *AnalysisResult) MatchingKeywords() []string {
	seen := make(map[string]struct{}, len(r.MatchingNounKeywords)+len(r.MatchingNERKeywords))
	keywords := make([]string, 0, len(r.MatchingNounKeywords)+len(r.MatchingNERKeywords))

	for _, list := range [][]string{r.MatchingNounKeywords, r.MatchingNERKeywords} {
		for _, k := range list {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keywords = append(keywords, k)
		}
	}

	return keywords
}

type errorBody struct {
	Detail any `json:"detail"`
}

// FetchAnalysis retrieves the analysis of the last uploaded resume.
// A JSON null body yields a nil result and a nil error.
func (c *Client) FetchAnalysis(ctx context.Context) (*AnalysisResult, error) {
	url := fmt.Sprintf("%s%s", c.BaseURL, nlpModulePath)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	data, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &RetrievalError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(data),
		}
	}

	result, err := c.decodeAnalysis(data)
	if err != nil {
		return nil, err
	}

	if result != nil {
		c.logger.Info("analysis received",
			zap.Bool("suitable", result.Suitable),
			zap.Float64("match_percentage", result.MatchPercentage),
		)
	}

	return result, nil
}

func (c *Client) decodeAnalysis(data []byte) (*AnalysisResult, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	if raw == nil {
		return nil, nil
	}

	result := &AnalysisResult{Raw: raw}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return nil, err
	}

	// Partial decoding is accepted: mismatched fields stay zero.
	if err := decoder.Decode(raw); err != nil {
		c.logger.Debug("analysis body has unexpected fields", zap.Error(err))
	}

	return result, nil
}

// parseDetail extracts the "detail" text from an error body.
// Non-string details are rendered as JSON; anything unparsable yields an empty string.
func parseDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	switch v := body.Detail.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
