package board

import "sync"

type Field string

const (
	FieldUser Field = "user-input"
	FieldText Field = "msg-input"
	FieldPid  Field = "new-pid"
)

// Form holds the page's input fields.
type Form struct {
	mu     sync.Mutex
	fields map[Field]string
}

func NewForm() *Form {
	return &Form{fields: map[Field]string{}}
}

func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[field]
}

func (f *Form) Set(field Field, v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[field] = v
}

func (f *Form) Clear(field Field) {
	f.Set(field, "")
}
