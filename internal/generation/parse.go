package generation

import (
	"encoding/json"

	"icebreak/internal/llm"
	"icebreak/internal/model"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaxTopics is the number of topics returned to the caller
const MaxTopics = 3

const (
	defaultSincerityScore = 85
	defaultSuccessRate    = 80
)

var requiredTopicFields = []string{"category", "emoji", "opener", "follow_ups", "avoid", "why_good"}

var (
	textTopicFields = []string{"category", "emoji", "opener"}
	listTopicFields = []string{"follow_ups", "avoid", "why_good"}
)

// Shape names where the topics array was found in a completion
type Shape string

const (
	ShapeRootArray  Shape = "root_array"
	ShapeTopicsKey  Shape = "topics_key"
	ShapeDataKey    Shape = "data_key"
	ShapeFirstArray Shape = "first_array"
)

// Legacy reports whether the shape is one of the fallback branches kept for older prompts
func (s Shape) Legacy() bool {
	return s == ShapeDataKey || s == ShapeFirstArray
}

// ParsedTopics is the validated output of ParseTopics
type ParsedTopics struct {
	Topics []model.IcebreakerTopic
	Shape  Shape
	Total  int // elements found before truncation
}

// ParseTopics validates a generation completion and decodes at most MaxTopics topics.
// Structural defects fail the whole call; out-of-range scores are defaulted.
func ParseTopics(text string) (*ParsedTopics, error) {
	text = llm.StripCodeFences(text)
	if !gjson.Valid(text) {
		return nil, shapeError("response is not valid JSON")
	}

	arr, shape, err := locateTopics(gjson.Parse(text))
	if err != nil {
		return nil, err
	}

	elems := arr.Array()
	if len(elems) == 0 {
		return nil, &Error{Kind: ErrEmptyTopicSet}
	}

	for i, elem := range elems {
		if !elem.IsObject() {
			return nil, shapeError("topic %d is not an object", i)
		}
		for _, field := range requiredTopicFields {
			if !elem.Get(field).Exists() {
				return nil, shapeError("topic %d missing field: %s", i, field)
			}
		}
	}

	total := len(elems)
	if len(elems) > MaxTopics {
		elems = elems[:MaxTopics]
	}

	topics := make([]model.IcebreakerTopic, 0, len(elems))
	for i, elem := range elems {
		raw, err := normalizeTopic(elem)
		if err != nil {
			return nil, shapeError("topic %d: %v", i, err)
		}
		var topic model.IcebreakerTopic
		if err := json.Unmarshal([]byte(raw), &topic); err != nil {
			return nil, shapeError("topic %d: %v", i, err)
		}
		topics = append(topics, topic)
	}

	return &ParsedTopics{Topics: topics, Shape: shape, Total: total}, nil
}

func locateTopics(root gjson.Result) (gjson.Result, Shape, error) {
	if root.IsArray() {
		return root, ShapeRootArray, nil
	}
	if !root.IsObject() {
		return gjson.Result{}, "", shapeError("response is neither an array nor an object")
	}
	if v := root.Get("topics"); v.IsArray() {
		return v, ShapeTopicsKey, nil
	}
	if v := root.Get("data"); v.IsArray() {
		return v, ShapeDataKey, nil
	}

	// first array-valued property, in document order
	var found gjson.Result
	root.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			found = value
			return false
		}
		return true
	})
	if found.Exists() {
		return found, ShapeFirstArray, nil
	}
	return gjson.Result{}, "", shapeError("cannot find topics array in response")
}

// normalizeTopic coerces present fields to the decoded types: scalars become
// strings, a lone value becomes a one-element list, and invalid scores get defaults.
// null is left alone and decodes to the zero value.
func normalizeTopic(elem gjson.Result) (string, error) {
	raw := elem.Raw
	var err error
	for _, field := range textTopicFields {
		v := elem.Get(field)
		if v.Type == gjson.String || v.Type == gjson.Null {
			continue
		}
		if raw, err = sjson.Set(raw, field, v.String()); err != nil {
			return "", err
		}
	}
	for _, field := range listTopicFields {
		v := elem.Get(field)
		if v.Type == gjson.Null {
			continue
		}
		items := []string{}
		if v.IsArray() {
			for _, item := range v.Array() {
				items = append(items, item.String())
			}
		} else {
			items = append(items, v.String())
		}
		if raw, err = sjson.Set(raw, field, items); err != nil {
			return "", err
		}
	}
	if !validScore(elem.Get("sincerity_score")) {
		if raw, err = sjson.Set(raw, "sincerity_score", defaultSincerityScore); err != nil {
			return "", err
		}
	}
	if !validScore(elem.Get("success_rate")) {
		if raw, err = sjson.Set(raw, "success_rate", defaultSuccessRate); err != nil {
			return "", err
		}
	}
	return raw, nil
}

func validScore(v gjson.Result) bool {
	return v.Type == gjson.Number && v.Num >= 0 && v.Num <= 100
}
