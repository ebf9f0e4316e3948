package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Translation is the content of a text field in one language.
type Translation struct {
	Language string `json:"language" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// Translations is an ordered list of translations, stored as a JSONB array.
type Translations []Translation

// Lookup returns the content for the given language.
func (ts Translations) Lookup(language string) (string, bool) {
	for _, t := range ts {
		if t.Language == language {
			return t.Content, true
		}
	}
	return "", false
}

// Languages lists the languages in stored order.
func (ts Translations) Languages() []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Language)
	}
	return out
}

func (ts Translations) validate(field string) error {
	seen := make(map[string]struct{}, len(ts))
	for i, t := range ts {
		if t.Language == "" {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].language", field, i), Reason: "is required"}
		}
		if t.Content == "" {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].content", field, i), Reason: "is required"}
		}
		if strings.ContainsRune(t.Content, 0) {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].content", field, i), Reason: "must not contain NUL characters"}
		}
		if _, dup := seen[t.Language]; dup {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].language", field, i), Reason: "duplicate language " + t.Language}
		}
		seen[t.Language] = struct{}{}
	}
	return nil
}

// Value implements driver.Valuer.
func (ts Translations) Value() (driver.Value, error) {
	if ts == nil {
		return "[]", nil
	}
	data, err := json.Marshal(ts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translations: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (ts *Translations) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*ts = Translations{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Translations", src)
	}
	var out Translations
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal translations: %w", err)
	}
	if out == nil {
		out = Translations{}
	}
	*ts = out
	return nil
}
