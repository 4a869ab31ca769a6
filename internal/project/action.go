package project

// Command names understood by ActionProvider.
const (
	CommandRun         = "run"
	CommandDebug       = "debug"
	CommandRunSingle   = "run.single"
	CommandDebugSingle = "debug.single"
)

// ActionContext is the argument context a command is checked and invoked with.
type ActionContext struct {
	items []Item
}

// EmptyContext is the context used for project-wide commands.
var EmptyContext = ActionContext{}

// FixedContext returns a context holding exactly the given items.
func FixedContext(items ...Item) ActionContext {
	cp := make([]Item, len(items))
	copy(cp, items)
	return ActionContext{items: cp}
}

// Items returns a copy of the context's items.
func (c ActionContext) Items() []Item {
	cp := make([]Item, len(c.items))
	copy(cp, c.items)
	return cp
}

// Len returns the number of items in the context.
func (c ActionContext) Len() int {
	return len(c.items)
}

// ActionProvider is the optional action-execution capability of a project.
type ActionProvider interface {
	IsActionEnabled(command string, ctx ActionContext) bool
	InvokeAction(command string, ctx ActionContext)
}
