package store

// EditOutcome reports what Edit did.
type EditOutcome int

const (
	// EditNotFound means no task has the given id.
	EditNotFound EditOutcome = iota
	// EditDiscarded means the new text was blank; the task is unchanged.
	EditDiscarded
	// EditUnchanged means the new text equals the current text.
	EditUnchanged
	// EditCommitted means the text was replaced and saved.
	EditCommitted
)

func (o EditOutcome) String() string {
	switch o {
	case EditDiscarded:
		return "discarded"
	case EditUnchanged:
		return "unchanged"
	case EditCommitted:
		return "committed"
	default:
		return "not_found"
	}
}

// EditState is the per-row mode of an interactive front end.
type EditState int

const (
	Viewing EditState = iota
	Editing
)

func (s EditState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// EditSession is an in-progress inline edit of one task.
//
// Value is the text being edited; front ends write keystrokes into it.
// Original is the stored text when the session began and is what Cancel
// and a discarded commit restore.
type EditSession struct {
	ID       string
	Original string
	Value    string
	state    EditState
}

// State reports whether the session is still editing.
func (e *EditSession) State() EditState {
	return e.state
}

// Cancel abandons the edit. Value is restored to Original and the store is
// not touched.
func (e *EditSession) Cancel() {
	e.Value = e.Original
	e.state = Viewing
}

// BeginEdit opens an edit session pre-filled with the current text of the
// task. Reports false when the id is unknown.
func (s *Store) BeginEdit(id string) (*EditSession, bool) {
	t, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return &EditSession{
		ID:       id,
		Original: t.Text,
		Value:    t.Text,
		state:    Editing,
	}, true
}

// CommitEdit applies the session through Edit and returns the session to
// Viewing. A discarded edit restores Value to Original; a committed one
// stores the trimmed text in both. Sessions that are no longer editing are
// ignored and report EditUnchanged.
func (s *Store) CommitEdit(sess *EditSession) (EditOutcome, error) {
	if sess == nil || sess.state != Editing {
		return EditUnchanged, nil
	}

	outcome, err := s.Edit(sess.ID, sess.Value)
	switch outcome {
	case EditDiscarded:
		sess.Value = sess.Original
	case EditUnchanged, EditCommitted:
		sess.Value = normalizeText(sess.Value)
		sess.Original = sess.Value
	}
	sess.state = Viewing
	return outcome, err
}
