package audit

// Listener receives the lifecycle of an audit. Callbacks arrive in order:
// AuditStarted, then for every file FileStarted, any number of AddError or
// AddException, FileFinished, and finally AuditFinished.
type Listener interface {
	AuditStarted()
	AuditFinished()
	FileStarted(file string)
	FileFinished(file string)
	AddError(event Event)
	AddException(file string, err error)
}

// CompositeListener forwards every callback to each member in order.
type CompositeListener struct {
	listeners []Listener
}

// Compile-time interface check
var _ Listener = (*CompositeListener)(nil)

// NewCompositeListener creates a composite of the non-nil listeners given.
func NewCompositeListener(listeners ...Listener) *CompositeListener {
	c := &CompositeListener{}
	for _, l := range listeners {
		c.Add(l)
	}
	return c
}

// Add appends a listener. Nil listeners are ignored.
func (c *CompositeListener) Add(l Listener) {
	if l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// Len returns the number of member listeners.
func (c *CompositeListener) Len() int {
	return len(c.listeners)
}

func (c *CompositeListener) AuditStarted() {
	for _, l := range c.listeners {
		l.AuditStarted()
	}
}

func (c *CompositeListener) AuditFinished() {
	for _, l := range c.listeners {
		l.AuditFinished()
	}
}

func (c *CompositeListener) FileStarted(file string) {
	for _, l := range c.listeners {
		l.FileStarted(file)
	}
}

func (c *CompositeListener) FileFinished(file string) {
	for _, l := range c.listeners {
		l.FileFinished(file)
	}
}

func (c *CompositeListener) AddError(event Event) {
	for _, l := range c.listeners {
		l.AddError(event)
	}
}

func (c *CompositeListener) AddException(file string, err error) {
	for _, l := range c.listeners {
		l.AddException(file, err)
	}
}
