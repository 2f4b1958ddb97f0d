package runtime

// List is an immutable singly-linked list. A node is either a pair (head and
// shared tail) or the empty list. Nodes are never mutated after construction,
// so any number of lists may share a tail.
type List struct {
	head Value
	tail *List
	size int
}

var emptyList = &List{}

// EmptyList returns the shared empty list.
func EmptyList() *List {
	return emptyList
}

// Cons returns a new list with head prepended to tail. tail is shared, not copied.
func Cons(head Value, tail *List) *List {
	if tail == nil {
		tail = emptyList
	}
	return &List{head: head, tail: tail, size: tail.size + 1}
}

// NewList builds a list holding vals in order.
func NewList(vals ...Value) *List {
	out := emptyList
	for idx := len(vals) - 1; idx >= 0; idx-- {
		out = Cons(vals[idx], out)
	}
	return out
}

// IsEmpty reports whether l is the empty list.
func (l *List) IsEmpty() bool {
	return l == nil || l.size == 0
}

// Head returns the first element; ok is false for the empty list.
func (l *List) Head() (Value, bool) {
	if l.IsEmpty() {
		return nil, false
	}
	return l.head, true
}

// Tail returns the list after the first element; ok is false for the empty list.
func (l *List) Tail() (*List, bool) {
	if l.IsEmpty() {
		return nil, false
	}
	return l.tail, true
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Values flattens the list into a slice in order.
func (l *List) Values() []Value {
	out := make([]Value, 0, l.Len())
	for node := l; !node.IsEmpty(); node = node.tail {
		out = append(out, node.head)
	}
	return out
}

// Reverse returns a new list with the elements in reverse order.
func (l *List) Reverse() *List {
	out := emptyList
	for node := l; !node.IsEmpty(); node = node.tail {
		out = Cons(node.head, out)
	}
	return out
}
