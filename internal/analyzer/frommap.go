package analyzer

import "fmt"

// MissingFeatureError reports a required structural feature absent from a
// collaborator-supplied record. Never defaulted: silent zeros previously
// masked extraction bugs.
type MissingFeatureError struct {
	Feature string
}

func (e *MissingFeatureError) Error() string {
	return "missing required feature: " + e.Feature
}

// FromMap validates a flat feature record (typically decoded JSON) and
// returns a typed Features value. Every required key must be present.
func FromMap(raw map[string]any) (Features, error) {
	var f Features
	var err error

	if f.CharCount, err = intField(raw, "char_count"); err != nil {
		return f, err
	}
	if f.CharUtilization, err = floatField(raw, "char_utilization"); err != nil {
		return f, err
	}
	if f.LineCount, err = intField(raw, "line_count"); err != nil {
		return f, err
	}
	if f.HasHook, err = boolField(raw, "has_hook"); err != nil {
		return f, err
	}
	if f.HasQuestion, err = boolField(raw, "has_question"); err != nil {
		return f, err
	}
	if f.QuestionCount, err = intField(raw, "question_count"); err != nil {
		return f, err
	}
	if f.HashtagCount, err = intField(raw, "hashtag_count"); err != nil {
		return f, err
	}
	if f.HasURL, err = boolField(raw, "has_url"); err != nil {
		return f, err
	}
	if f.HasCTA, err = boolField(raw, "has_cta"); err != nil {
		return f, err
	}
	if f.CTACount, err = intField(raw, "cta_count"); err != nil {
		return f, err
	}
	if f.HasNumbers, err = boolField(raw, "has_numbers"); err != nil {
		return f, err
	}
	if f.HasListFormat, err = boolField(raw, "has_list_format"); err != nil {
		return f, err
	}
	if f.PowerWordCount, err = intField(raw, "power_word_count"); err != nil {
		return f, err
	}
	if f.EmojiCount, err = intField(raw, "emoji_count"); err != nil {
		return f, err
	}
	if f.HasMedia, err = boolField(raw, "has_media"); err != nil {
		return f, err
	}

	// Optional enrichments.
	if v, ok := raw["lang"].(string); ok {
		f.Lang = v
	}
	if v, ok := raw["power_words_found"].([]any); ok {
		for _, w := range v {
			if s, ok := w.(string); ok {
				f.PowerWords = append(f.PowerWords, s)
			}
		}
	}
	return f, nil
}

func boolField(raw map[string]any, key string) (bool, error) {
	v, ok := raw[key]
	if !ok {
		return false, &MissingFeatureError{Feature: key}
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("feature %q: expected bool, got %T", key, v)
	}
	return b, nil
}

func intField(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &MissingFeatureError{Feature: key}
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64: // JSON numbers decode as float64
		return int(n), nil
	default:
		return 0, fmt.Errorf("feature %q: expected number, got %T", key, v)
	}
}

func floatField(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &MissingFeatureError{Feature: key}
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("feature %q: expected number, got %T", key, v)
	}
}
