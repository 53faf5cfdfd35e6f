package sheet

import (
	"context"
	"io"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const defaultWriteTimeout = 2 * time.Second

type PersisterOptions struct {
	Logger       *log.Logger
	WriteTimeout time.Duration
	// Debug logs rejected stored values and writes skipped before hydration.
	Debug bool
}

// Persister hydrates a Sheet from a KVStore once and then writes every change
// through to the store, one key per field.
type Persister struct {
	store        KVStore
	logger       *log.Logger
	writeTimeout time.Duration
	debug        bool

	mu       sync.Mutex
	started  bool
	hydrated atomic.Bool
	failures atomic.Int64
}

func NewPersister(store KVStore, opts PersisterOptions) *Persister {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	timeout := opts.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Persister{
		store:        store,
		logger:       logger,
		writeTimeout: timeout,
		debug:        opts.Debug,
	}
}

// Hydrate subscribes the persister to s, loads every stored field into it and only
// then enables write-through. Unreadable or invalid stored values are ignored and the
// sheet keeps its defaults for them. It can run once per persister.
func (p *Persister) Hydrate(ctx context.Context, s *Sheet) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyHydrated
	}
	p.started = true
	p.mu.Unlock()

	s.Subscribe(p.observe)

	state := s.Snapshot()

	if value, ok := p.load(ctx, KeyQuestionCount); ok {
		if count, err := decodeBoundedInt(value, MinQuestionCount, MaxQuestionCount); err == nil {
			state.QuestionCount = count
		} else {
			p.debugf("ignoring %s: %v", KeyQuestionCount, err)
		}
	}
	if value, ok := p.load(ctx, KeyOptionsPerQuestion); ok {
		if n, err := decodeBoundedInt(value, MinOptionsPerQuestion, MaxOptionsPerQuestion); err == nil {
			state.OptionsPerQuestion = n
		} else {
			p.debugf("ignoring %s: %v", KeyOptionsPerQuestion, err)
		}
	}
	if value, ok := p.load(ctx, KeyAnswers); ok {
		if answers, err := decodeAnswers(value); err == nil {
			state.Answers = answers
		} else {
			p.debugf("ignoring %s: %v", KeyAnswers, err)
		}
	}
	if value, ok := p.load(ctx, KeyCorrectness); ok {
		if correctness, err := decodeCorrectness(value); err == nil {
			state.Correctness = correctness
		} else {
			p.debugf("ignoring %s: %v", KeyCorrectness, err)
		}
	}

	s.Restore(state)
	p.hydrated.Store(true)

	restored := s.Snapshot()
	p.logger.Printf("sheet hydrated: %d questions, %d options, %d answers, %d evaluations",
		restored.QuestionCount, restored.OptionsPerQuestion, len(restored.Answers), len(restored.Correctness))
	return nil
}

func (p *Persister) Hydrated() bool {
	return p.hydrated.Load()
}

// Failures reports how many writes or deletes the store rejected.
func (p *Persister) Failures() int64 {
	return p.failures.Load()
}

func (p *Persister) load(ctx context.Context, key string) (string, bool) {
	value, ok, err := p.store.Load(ctx, key)
	if err != nil {
		p.logger.Printf("load %s failed, using default: %v", key, err)
		return "", false
	}
	return value, ok
}

func (p *Persister) observe(change Change) {
	if !p.hydrated.Load() {
		p.debugf("skipping %s write during hydration", change.Field)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	key, value, err := encodeChange(change)
	if err != nil {
		p.fail("encode %s: %v", change.Field, err)
		return
	}

	if change.Removed {
		if err := p.store.Delete(ctx, key); err != nil {
			p.fail("delete %s: %v", key, err)
		}
		return
	}
	if err := p.store.Save(ctx, key, value); err != nil {
		p.fail("save %s: %v", key, err)
	}
}

func (p *Persister) fail(format string, args ...any) {
	p.failures.Add(1)
	p.logger.Printf(format, args...)
}

func (p *Persister) debugf(format string, args ...any) {
	if p.debug {
		p.logger.Printf(format, args...)
	}
}

func encodeChange(change Change) (key, value string, err error) {
	switch change.Field {
	case FieldAnswers:
		value, err = encodeAnswers(change.Snapshot.Answers)
		return KeyAnswers, value, err
	case FieldCorrectness:
		value, err = encodeCorrectness(change.Snapshot.Correctness)
		return KeyCorrectness, value, err
	case FieldQuestionCount:
		return KeyQuestionCount, strconv.Itoa(change.Snapshot.QuestionCount), nil
	case FieldOptionsPerQuestion:
		return KeyOptionsPerQuestion, strconv.Itoa(change.Snapshot.OptionsPerQuestion), nil
	default:
		return "", "", errMalformed
	}
}
