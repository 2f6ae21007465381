package handler

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/todoflow-labs/fragment-service/internal/task"
)

const maxBody = 1 << 20

var fieldNames = []string{"title", "description", "priority"}

// parseFields reads title, description and priority from a form-encoded,
// multipart or JSON body. Keys that are absent stay nil. Undecodable bodies
// are returned as plain errors; wrongly typed JSON values as validation errors.
func parseFields(r *http.Request) (task.Fields, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		return parseJSONFields(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBody); err != nil {
			return task.Fields{}, fmt.Errorf("parse multipart payload: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return task.Fields{}, fmt.Errorf("parse form payload: %w", err)
		}
	}
	vals := make(map[string]*string, len(fieldNames))
	for _, name := range fieldNames {
		if v, ok := r.PostForm[name]; ok && len(v) > 0 {
			s := v[0]
			vals[name] = &s
		}
	}
	return task.Fields{
		Title:       vals["title"],
		Description: vals["description"],
		Priority:    vals["priority"],
	}, nil
}

func parseJSONFields(r *http.Request) (task.Fields, error) {
	var raw map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody)).Decode(&raw); err != nil {
		return task.Fields{}, fmt.Errorf("decode json payload: %w", err)
	}

	vals := make(map[string]*string, len(fieldNames))
	for _, name := range fieldNames {
		v, ok := raw[name]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return task.Fields{}, &task.ValidationError{Field: name, Reason: name + " must be a string"}
		}
		vals[name] = &s
	}
	return task.Fields{
		Title:       vals["title"],
		Description: vals["description"],
		Priority:    vals["priority"],
	}, nil
}
