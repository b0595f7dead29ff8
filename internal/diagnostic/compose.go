package diagnostic

import (
	"github.com/colt-lang/colt/internal/position"
)

// FilterFunc decides whether a report is forwarded.
type FilterFunc func(msg string, src *position.SourceInfo, nb ReportNumber) bool

// Filter forwards the reports accepted by its predicates. A nil predicate
// accepts everything of its level.
type Filter struct {
	Counter
	next                  Reporter
	message, warn, errorf FilterFunc
}

// NewFilter wraps next with one predicate per level.
func NewFilter(next Reporter, message, warn, errorf FilterFunc) *Filter {
	return &Filter{next: next, message: message, warn: warn, errorf: errorf}
}

// IgnoreNumbers returns a predicate rejecting the given report numbers.
func IgnoreNumbers(nbs ...ReportNumber) FilterFunc {
	ignored := make(map[ReportNumber]struct{}, len(nbs))
	for _, nb := range nbs {
		ignored[nb] = struct{}{}
	}
	return func(_ string, _ *position.SourceInfo, nb ReportNumber) bool {
		_, skip := ignored[nb]
		return !skip
	}
}

func (f *Filter) Message(msg string, src *position.SourceInfo, nb ReportNumber) {
	f.count(DiagnosticMessage)
	if f.message == nil || f.message(msg, src, nb) {
		f.next.Message(msg, src, nb)
	}
}

func (f *Filter) Warn(msg string, src *position.SourceInfo, nb ReportNumber) {
	f.count(DiagnosticWarning)
	if f.warn == nil || f.warn(msg, src, nb) {
		f.next.Warn(msg, src, nb)
	}
}

func (f *Filter) Error(msg string, src *position.SourceInfo, nb ReportNumber) {
	f.count(DiagnosticError)
	if f.errorf == nil || f.errorf(msg, src, nb) {
		f.next.Error(msg, src, nb)
	}
}

// NoLimit disables the limit of a level in NewLimiter.
const NoLimit = 0

type budget struct {
	remaining uint64
	limited   bool
	exhausted bool
}

func newBudget(n uint64) budget {
	return budget{remaining: n, limited: n != NoLimit}
}

// take returns true if the report can be forwarded, and true as second
// result exactly once, when the budget runs out.
func (b *budget) take() (forward bool, notify bool) {
	if !b.limited {
		return true, false
	}
	if b.remaining > 0 {
		b.remaining--
		return true, false
	}
	if b.exhausted {
		return false, false
	}
	b.exhausted = true
	return false, true
}

// Limiter forwards at most a fixed number of reports per level. Once a
// level runs out, a single notice is forwarded and the level goes silent.
type Limiter struct {
	Counter
	next                    Reporter
	messages, warns, errors budget
}

// NewLimiter wraps next. A limit of NoLimit disables limiting for that level.
func NewLimiter(next Reporter, maxErrors, maxWarnings, maxMessages uint64) *Limiter {
	return &Limiter{
		next:     next,
		messages: newBudget(maxMessages),
		warns:    newBudget(maxWarnings),
		errors:   newBudget(maxErrors),
	}
}

func (l *Limiter) Message(msg string, src *position.SourceInfo, nb ReportNumber) {
	l.count(DiagnosticMessage)
	forward, notify := l.messages.take()
	if forward {
		l.next.Message(msg, src, nb)
	} else if notify {
		l.next.Message("No more messages will be reported.", nil, 0)
	}
}

func (l *Limiter) Warn(msg string, src *position.SourceInfo, nb ReportNumber) {
	l.count(DiagnosticWarning)
	forward, notify := l.warns.take()
	if forward {
		l.next.Warn(msg, src, nb)
	} else if notify {
		l.next.Warn("No more warnings will be reported.", nil, 0)
	}
}

func (l *Limiter) Error(msg string, src *position.SourceInfo, nb ReportNumber) {
	l.count(DiagnosticError)
	forward, notify := l.errors.take()
	if forward {
		l.next.Error(msg, src, nb)
	} else if notify {
		l.next.Error("No more errors will be reported.", nil, 0)
	}
}

// WarningsAsErrors forwards every warning as an error.
type WarningsAsErrors struct {
	Counter
	next Reporter
}

// NewWarningsAsErrors wraps next.
func NewWarningsAsErrors(next Reporter) *WarningsAsErrors {
	return &WarningsAsErrors{next: next}
}

func (w *WarningsAsErrors) Message(msg string, src *position.SourceInfo, nb ReportNumber) {
	w.count(DiagnosticMessage)
	w.next.Message(msg, src, nb)
}

func (w *WarningsAsErrors) Warn(msg string, src *position.SourceInfo, nb ReportNumber) {
	w.count(DiagnosticError)
	w.next.Error(msg, src, nb)
}

func (w *WarningsAsErrors) Error(msg string, src *position.SourceInfo, nb ReportNumber) {
	w.count(DiagnosticError)
	w.next.Error(msg, src, nb)
}
