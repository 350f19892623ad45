package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
)

// ErrIncomplete is returned when a form that fails the completion check is finalized.
var ErrIncomplete = errors.New("form is incomplete")

// IncompleteError carries the required fields or sections blocking finalization.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v: %s", ErrIncomplete, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is match ErrIncomplete.
func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// View is the snapshot handed to the rendering layer after every mutation.
type View struct {
	State      schema.FormState    `json:"state"`
	Scores     schema.Scorecard    `json:"scores"`
	Relevant   map[string][]string `json:"relevant"`
	Completion schema.Completion   `json:"completion"`
}

// Session owns the form state of one assessment being edited.
// It is the only mutation entry point and keeps the state normalized after every change.
// A Session is not safe for concurrent use.
type Session struct {
	checklist *schema.Checklist
	graph     *Graph
	meta      schema.RecordMeta
	recordID  string
	state     schema.FormState
}

// NewSession starts a fresh assessment with every item unanswered.
func NewSession(cl *schema.Checklist, meta schema.RecordMeta) (*Session, error) {
	s, err := newSession(cl, meta)
	if err != nil {
		return nil, err
	}
	state := schema.NewFormState()
	for _, f := range cl.Fields {
		state.SetField(f.Name, f.Default)
	}
	for _, e := range s.graph.Order {
		if e.Kind == schema.ItemElement {
			state.SetAnswer(e.Section, e.Key, schema.AnswerUnset)
		}
	}
	s.state, _ = Normalize(cl, state)
	return s, nil
}

// ResumeSession rehydrates a session from a stored record. The record ID is kept so the next
// save updates it. Dropped payload values are returned as warnings.
func ResumeSession(cl *schema.Checklist, rec schema.Record) (*Session, []string, error) {
	if rec.ChecklistID != "" && rec.ChecklistID != cl.ID {
		return nil, nil, fmt.Errorf("record %s belongs to checklist %s, not %s", rec.ID, rec.ChecklistID, cl.ID)
	}
	s, err := newSession(cl, schema.RecordMeta{CourseID: rec.CourseID, ParticipantID: rec.ParticipantID})
	if err != nil {
		return nil, nil, err
	}
	var warnings []string
	s.state, warnings = FromPayload(cl, rec.Payload)
	s.recordID = rec.ID
	return s, warnings, nil
}

func newSession(cl *schema.Checklist, meta schema.RecordMeta) (*Session, error) {
	if cl == nil {
		return nil, errors.New("checklist is required")
	}
	if err := cl.Validate(); err != nil {
		return nil, err
	}
	g, err := BuildGraph(cl)
	if err != nil {
		return nil, err
	}
	return &Session{checklist: cl, graph: g, meta: meta}, nil
}

// Checklist returns the checklist being assessed.
func (s *Session) Checklist() *schema.Checklist { return s.checklist }

// RecordID returns the ID of the stored record, or empty before the first save.
func (s *Session) RecordID() string { return s.recordID }

// Meta returns the course and participant of the assessment.
func (s *Session) Meta() schema.RecordMeta { return s.meta }

// State returns a copy of the current form state.
func (s *Session) State() schema.FormState { return s.state.Clone() }

// SetField updates a scalar field. Branch selectors only accept their options or empty.
// It reports whether normalization corrected any other value.
func (s *Session) SetField(name, value string) (bool, error) {
	f, ok := s.checklist.FieldByName(name)
	if !ok {
		return false, fmt.Errorf("unknown field %s", name)
	}
	if value != "" && len(f.Options) > 0 && !slices.Contains(f.Options, value) {
		return false, fmt.Errorf("invalid value %q for %s. must be one of %s", value, name, strings.Join(f.Options, ", "))
	}
	return s.apply(func(st *schema.FormState) { st.SetField(name, value) }), nil
}

// SetAnswer updates a single item.
func (s *Session) SetAnswer(section, key string, a schema.Answer) (bool, error) {
	if _, ok := schema.ValidAnswers[a]; !ok {
		return false, fmt.Errorf("invalid answer %q", a)
	}
	e, err := s.element(section, key, schema.ItemElement)
	if err != nil {
		return false, err
	}
	if a == schema.AnswerNA && !e.AllowNA {
		return false, fmt.Errorf("%s does not accept na", e.Ref())
	}
	return s.apply(func(st *schema.FormState) { st.SetAnswer(section, key, a) }), nil
}

// SetChoice checks or unchecks one option of a multi-select group.
// Checking an option clears an na mark.
func (s *Session) SetChoice(section, key, option string, checked bool) (bool, error) {
	e, err := s.element(section, key, schema.ChoiceElement)
	if err != nil {
		return false, err
	}
	if !e.Choice.HasOption(option) {
		return false, fmt.Errorf("unknown option %s of %s", option, e.Ref())
	}
	return s.apply(func(st *schema.FormState) {
		sel := st.Selection(section, key).Clone()
		if checked {
			if sel.Checked == nil {
				sel.Checked = make(map[string]bool)
			}
			sel.Checked[option] = true
			sel.NA = false
		} else {
			delete(sel.Checked, option)
		}
		st.SetSelection(section, key, sel)
	}), nil
}

// SetChoiceNA marks a multi-select group as not applicable, clearing its options, or unmarks it.
func (s *Session) SetChoiceNA(section, key string, na bool) (bool, error) {
	e, err := s.element(section, key, schema.ChoiceElement)
	if err != nil {
		return false, err
	}
	if na && !e.AllowNA {
		return false, fmt.Errorf("%s does not accept na", e.Ref())
	}
	return s.apply(func(st *schema.FormState) {
		if na {
			st.SetSelection(section, key, schema.Selection{NA: true})
			return
		}
		st.SetSelection(section, key, schema.Selection{})
	}), nil
}

func (s *Session) element(section, key string, kind schema.ElementKind) (schema.Element, error) {
	ref := schema.Ref{Section: section, Key: key}
	e, ok := s.graph.Element(ref)
	if !ok {
		return schema.Element{}, fmt.Errorf("unknown %s %s", kind, ref)
	}
	if e.Kind != kind {
		return schema.Element{}, fmt.Errorf("%s is a %s, not a %s", ref, e.Kind, kind)
	}
	return e, nil
}

func (s *Session) apply(mutate func(*schema.FormState)) bool {
	next := s.state.Clone()
	mutate(&next)
	var dirty bool
	s.state, dirty = NormalizeChange(s.checklist, s.state, next)
	return dirty
}

// View returns the derived snapshot of the current state.
func (s *Session) View() View {
	state := s.State()
	return View{
		State:      state,
		Scores:     Score(s.checklist, state),
		Relevant:   RelevantKeys(s.checklist, state),
		Completion: CheckCompletion(s.checklist, state),
	}
}

// Record builds the record that a save would send to the store.
func (s *Session) Record(status schema.RecordStatus) schema.Record {
	card := Score(s.checklist, s.state)
	return schema.Record{
		ID:            s.recordID,
		ChecklistID:   s.checklist.ID,
		CourseID:      s.meta.CourseID,
		ParticipantID: s.meta.ParticipantID,
		Status:        status,
		Payload:       ToPayload(s.state),
		Scores:        card.Sections,
		Overall:       card.Overall,
	}
}

// Save persists the session. Finalizing an incomplete form returns an *IncompleteError and
// never reaches the store. The actor is attached as mentor on create and as editor on update.
func (s *Session) Save(ctx context.Context, store contract.RecordStore, identity contract.IdentityProvider, status schema.RecordStatus) (schema.Record, error) {
	if status == "" {
		status = schema.StatusDraft
	}
	if _, ok := schema.ValidRecordStatuses[status]; !ok {
		return schema.Record{}, fmt.Errorf("invalid status '%s'. must be draft or complete", status)
	}
	if status == schema.StatusComplete {
		if c := CheckCompletion(s.checklist, s.state); !c.Complete {
			return schema.Record{}, &IncompleteError{Missing: c.Incomplete}
		}
	}
	if store == nil {
		return schema.Record{}, errors.New("record store is not configured")
	}

	var actor schema.Actor
	if identity != nil {
		a, err := identity.CurrentActor(ctx)
		if err != nil {
			return schema.Record{}, fmt.Errorf("resolve current actor: %w", err)
		}
		actor = a
	}

	rec := s.Record(status)
	if s.recordID == "" {
		rec.MentorName, rec.MentorEmail = actor.Name, actor.Email
	} else {
		rec.EditedByName, rec.EditedByEmail = actor.Name, actor.Email
	}

	saved, err := store.Save(ctx, rec, s.recordID)
	if err != nil {
		return schema.Record{}, fmt.Errorf("save record: %w", err)
	}
	s.recordID = saved.ID
	return saved, nil
}
