package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nfi-health/assess/core"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// readForm reads a form document from path, or from stdin when path is "-".
// A document with a "payload" key is a stored record; anything else is a bare payload.
func readForm(path string) (schema.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return schema.Record{}, fmt.Errorf("failed to read form: %w", err)
	}
	return parseForm(data)
}

func parseForm(data []byte) (schema.Record, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return schema.Record{}, fmt.Errorf("invalid form JSON: %w", err)
	}

	var rec schema.Record
	if _, ok := probe["payload"]; ok {
		if err := json.Unmarshal(data, &rec); err != nil {
			return schema.Record{}, fmt.Errorf("invalid record JSON: %w", err)
		}
		return rec, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec.Payload); err != nil {
		return schema.Record{}, fmt.Errorf("invalid payload JSON: %w", err)
	}
	return rec, nil
}

// openSession resolves the checklist of rec and rehydrates an editing session from it.
// The --checklist-file and --checklist flags win over the checklist named in the record,
// and --course/--participant override its metadata.
func openSession(rec schema.Record, c *contract.Config) (*core.Session, error) {
	id := c.ChecklistID
	if id == "" {
		id = rec.ChecklistID
	}
	cl, err := core.ResolveChecklist(id, c.ChecklistFile)
	if err != nil {
		return nil, err
	}

	if c.Meta.CourseID != "" {
		rec.CourseID = c.Meta.CourseID
	}
	if c.Meta.ParticipantID != "" {
		rec.ParticipantID = c.Meta.ParticipantID
	}

	session, warnings, err := core.ResumeSession(cl, rec)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		contract.Logger.Warn().Str("checklist", cl.ID).Msg(w)
	}
	return session, nil
}

// loadSession reads the form at path and opens a session on it.
func loadSession(path string, c *contract.Config) (*core.Session, error) {
	rec, err := readForm(path)
	if err != nil {
		return nil, err
	}
	return openSession(rec, c)
}
