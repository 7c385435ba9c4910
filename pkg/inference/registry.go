package inference

import (
	"fmt"
	"sync"
)

// Key identifies one constructed pipeline.
type Key struct {
	Task      string
	Model     string
	MinLength int
	MaxLength int
}

func (k Key) String() string {
	if k.Task == TaskSummarization {
		return fmt.Sprintf("%s/%s[%d,%d]", k.Task, k.Model, k.MinLength, k.MaxLength)
	}
	return fmt.Sprintf("%s/%s", k.Task, k.Model)
}

// Registry builds each distinct pipeline once per process and hands out the cached instance afterwards.
type Registry struct {
	backend Backend

	mu          sync.Mutex
	summarizers map[Key]Summarizer
	translators map[Key]Translator

	// OnBuild is called after a pipeline was constructed. Optional.
	OnBuild func(key Key)
}

func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend:     backend,
		summarizers: make(map[Key]Summarizer),
		translators: make(map[Key]Translator),
	}
}

func (r *Registry) Summarizer(model string, opts SummarizeOptions) (Summarizer, error) {
	key := Key{Task: TaskSummarization, Model: model, MinLength: opts.MinLength, MaxLength: opts.MaxLength}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.summarizers[key]; ok {
		return s, nil
	}
	s, err := r.backend.NewSummarizer(model, opts)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", key, err)
	}
	r.summarizers[key] = s
	if r.OnBuild != nil {
		r.OnBuild(key)
	}
	return s, nil
}

func (r *Registry) Translator(task, model string) (Translator, error) {
	key := Key{Task: task, Model: model}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.translators[key]; ok {
		return t, nil
	}
	t, err := r.backend.NewTranslator(task, model)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", key, err)
	}
	r.translators[key] = t
	if r.OnBuild != nil {
		r.OnBuild(key)
	}
	return t, nil
}

// Size reports how many pipelines have been built.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.summarizers) + len(r.translators)
}
