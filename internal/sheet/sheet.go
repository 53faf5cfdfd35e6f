package sheet

import (
	"sort"
	"sync"
)

type Field int

const (
	FieldAnswers Field = iota
	FieldCorrectness
	FieldQuestionCount
	FieldOptionsPerQuestion
)

func (f Field) String() string {
	switch f {
	case FieldAnswers:
		return "answers"
	case FieldCorrectness:
		return "correctness"
	case FieldQuestionCount:
		return "question_count"
	case FieldOptionsPerQuestion:
		return "options_per_question"
	default:
		return "unknown"
	}
}

// Change describes one field touched by a mutation. Removed is set when the field
// was cleared as a whole and its durable entry should go away rather than be rewritten.
type Change struct {
	Field    Field
	Snapshot Snapshot
	Removed  bool
}

// Observer receives changes synchronously, in mutation order, while the sheet is
// locked. Observers must not call back into the sheet.
type Observer func(Change)

// Snapshot is a detached copy of the sheet state.
type Snapshot struct {
	QuestionCount      int            `json:"question_count"`
	OptionsPerQuestion int            `json:"options_per_question"`
	Answers            map[int]string `json:"answers"`
	Correctness        map[int]bool   `json:"correctness"`
}

// Sheet holds the answer sheet state. The zero value is not usable; use New.
type Sheet struct {
	mu sync.Mutex

	questionCount      int
	optionsPerQuestion int
	answers            map[int]string
	correctness        map[int]bool

	observers []Observer
}

func New() *Sheet {
	return &Sheet{
		questionCount:      DefaultQuestionCount,
		optionsPerQuestion: DefaultOptionsPerQuestion,
		answers:            make(map[int]string),
		correctness:        make(map[int]bool),
	}
}

func (s *Sheet) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *Sheet) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Options returns the letters selectable with the current options-per-question.
func (s *Sheet) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alphabet(s.optionsPerQuestion)
}

func (s *Sheet) SetAnswer(question int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if question < 1 || question > s.questionCount {
		return ErrQuestionOutOfRange
	}
	letter, ok := normalizeOption(option, s.optionsPerQuestion)
	if !ok {
		return ErrInvalidOption
	}

	s.answers[question] = letter
	s.notifyLocked(Change{Field: FieldAnswers})
	return nil
}

// ClearAnswer drops the answer for question. The correctness flag is kept.
func (s *Sheet) ClearAnswer(question int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[question]; !ok {
		return
	}
	delete(s.answers, question)
	s.notifyLocked(Change{Field: FieldAnswers})
}

// SetCorrectness flags question as correct or incorrect. The question does not need
// an answer.
func (s *Sheet) SetCorrectness(question int, isCorrect bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if question < 1 || question > s.questionCount {
		return ErrQuestionOutOfRange
	}

	s.correctness[question] = isCorrect
	s.notifyLocked(Change{Field: FieldCorrectness})
	return nil
}

func (s *Sheet) ClearCorrectness(question int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.correctness[question]; !ok {
		return
	}
	delete(s.correctness, question)
	s.notifyLocked(Change{Field: FieldCorrectness})
}

func (s *Sheet) IncreaseQuestionCount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questionCount += QuestionStep
	s.notifyLocked(Change{Field: FieldQuestionCount})
}

// DecreaseQuestionCount removes the last QuestionStep questions together with their
// answers and correctness flags. It does nothing once the count is at or below the step.
func (s *Sheet) DecreaseQuestionCount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.questionCount <= QuestionStep {
		return
	}

	old := s.questionCount
	s.questionCount -= QuestionStep
	for question := old - QuestionStep + 1; question <= old; question++ {
		delete(s.answers, question)
		delete(s.correctness, question)
	}

	s.notifyLocked(
		Change{Field: FieldQuestionCount},
		Change{Field: FieldAnswers},
		Change{Field: FieldCorrectness},
	)
}

// SetOptionsPerQuestion switches the alphabet size. Every answer and correctness
// flag is discarded, even when n equals the current value.
func (s *Sheet) SetOptionsPerQuestion(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validOptionsPerQuestion(n) {
		return ErrInvalidOptionsPerQuestion
	}

	s.optionsPerQuestion = n
	s.answers = make(map[int]string)
	s.correctness = make(map[int]bool)

	s.notifyLocked(
		Change{Field: FieldOptionsPerQuestion},
		Change{Field: FieldAnswers},
		Change{Field: FieldCorrectness},
	)
	return nil
}

func (s *Sheet) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = make(map[int]string)
	s.correctness = make(map[int]bool)

	s.notifyLocked(
		Change{Field: FieldAnswers, Removed: true},
		Change{Field: FieldCorrectness, Removed: true},
	)
}

// Restore replaces the whole state. Invalid settings fall back to the current values
// and record keys outside [1, QuestionCount] are dropped. Every field is reported
// to observers.
func (s *Sheet) Restore(state Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.QuestionCount >= MinQuestionCount {
		s.questionCount = state.QuestionCount
	}
	if validOptionsPerQuestion(state.OptionsPerQuestion) {
		s.optionsPerQuestion = state.OptionsPerQuestion
	}

	s.answers = make(map[int]string, len(state.Answers))
	for question, letter := range state.Answers {
		if question >= 1 && question <= s.questionCount {
			s.answers[question] = letter
		}
	}
	s.correctness = make(map[int]bool, len(state.Correctness))
	for question, isCorrect := range state.Correctness {
		if question >= 1 && question <= s.questionCount {
			s.correctness[question] = isCorrect
		}
	}

	s.notifyLocked(
		Change{Field: FieldQuestionCount},
		Change{Field: FieldOptionsPerQuestion},
		Change{Field: FieldAnswers},
		Change{Field: FieldCorrectness},
	)
}

func (s *Sheet) notifyLocked(changes ...Change) {
	if len(s.observers) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, change := range changes {
		change.Snapshot = snapshot
		for _, observer := range s.observers {
			observer(change)
		}
	}
}

func (s *Sheet) snapshotLocked() Snapshot {
	answers := make(map[int]string, len(s.answers))
	for question, letter := range s.answers {
		answers[question] = letter
	}
	correctness := make(map[int]bool, len(s.correctness))
	for question, isCorrect := range s.correctness {
		correctness[question] = isCorrect
	}
	return Snapshot{
		QuestionCount:      s.questionCount,
		OptionsPerQuestion: s.optionsPerQuestion,
		Answers:            answers,
		Correctness:        correctness,
	}
}

// AnsweredQuestions returns the answered question numbers in ascending order.
func (s Snapshot) AnsweredQuestions() []int {
	questions := make([]int, 0, len(s.Answers))
	for question := range s.Answers {
		questions = append(questions, question)
	}
	sort.Ints(questions)
	return questions
}
