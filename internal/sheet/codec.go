package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errMalformed = errors.New("malformed stored value")

func encodeAnswers(answers map[int]string) (string, error) {
	raw := make(map[string]string, len(answers))
	for question, letter := range answers {
		raw[strconv.Itoa(question)] = letter
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func encodeCorrectness(correctness map[int]bool) (string, error) {
	raw := make(map[string]bool, len(correctness))
	for question, isCorrect := range correctness {
		raw[strconv.Itoa(question)] = isCorrect
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// decodeAnswers accepts only a flat JSON object whose keys are positive integers
// and whose values are strings.
func decodeAnswers(value string) (map[int]string, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", errMalformed)
	}

	answers := make(map[int]string, len(raw))
	for key, letter := range raw {
		question, err := parseQuestionKey(key)
		if err != nil {
			return nil, err
		}
		answers[question] = letter
	}
	return answers, nil
}

func decodeCorrectness(value string) (map[int]bool, error) {
	var raw map[string]bool
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", errMalformed)
	}

	correctness := make(map[int]bool, len(raw))
	for key, isCorrect := range raw {
		question, err := parseQuestionKey(key)
		if err != nil {
			return nil, err
		}
		correctness[question] = isCorrect
	}
	return correctness, nil
}

func decodeBoundedInt(value string, minValue, maxValue int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if parsed < minValue || parsed > maxValue {
		return 0, fmt.Errorf("%w: %d outside [%d, %d]", errMalformed, parsed, minValue, maxValue)
	}
	return parsed, nil
}

func parseQuestionKey(key string) (int, error) {
	question, err := strconv.Atoi(key)
	if err != nil || question <= 0 {
		return 0, fmt.Errorf("%w: question key %q", errMalformed, key)
	}
	return question, nil
}
