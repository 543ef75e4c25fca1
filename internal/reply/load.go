package reply

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/diogo/aichat/internal/errors"
)

// LoadReplies reads a canned reply set from a JSON file. Both a bare array
// of strings and an object with a "replies" array are accepted:
//
//	["Hi!", "Sure."]
//	{"replies": ["Hi!", "Sure."]}
func LoadReplies(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replies file: %w", err)
	}
	return ParseReplies(data)
}

// ParseReplies extracts the reply set from JSON data
func ParseReplies(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse replies file: invalid JSON")
	}

	parsed := gjson.ParseBytes(data)
	list := parsed
	if parsed.IsObject() {
		list = parsed.Get("replies")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("failed to parse replies file: expected an array of strings")
	}

	var replies []string
	list.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			replies = append(replies, item.String())
		}
		return true
	})

	replies = cleanReplies(replies)
	if len(replies) == 0 {
		return nil, apperrors.ErrNoReplies
	}
	return replies, nil
}

func cleanReplies(replies []string) []string {
	var out []string
	for _, r := range replies {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	return out
}
