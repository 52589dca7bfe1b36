package question

// SetVersion is the only question set file version understood by LoadSet.
const SetVersion = 1

// DefaultTitle is the document title used when a set does not name one.
const DefaultTitle = "Questionnaire"

// Set is an ordered question list with document metadata, as exchanged with renderers.
type Set struct {
	Version   int        `json:"version"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// NewSet wraps questions into a set with the current version.
func NewSet(title string, questions []Question) Set {
	if questions == nil {
		questions = []Question{}
	}
	return Set{Version: SetVersion, Title: title, Questions: questions}
}

// DisplayTitle returns the title or DefaultTitle when empty.
func (s Set) DisplayTitle() string {
	if s.Title == "" {
		return DefaultTitle
	}
	return s.Title
}

// setRecord is the on-disk shape of a set before validation.
type setRecord struct {
	Version   int              `json:"version" yaml:"version"`
	Title     string           `json:"title" yaml:"title"`
	Questions []questionRecord `json:"questions" yaml:"questions"`
}
