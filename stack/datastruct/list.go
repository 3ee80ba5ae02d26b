package datastruct

import "iter"

// List is an intrusive doubly linked list: nodes carry their own links, so
// callers can keep a *Node as a stable handle and unlink it in O(1). The
// container uses it for stack order and for the live descendant set, where
// insertion order is the only ordering that matters.
type List[T any] struct {
	First *Node[T] // Pointer to the first node
	Last  *Node[T] // Pointer to the last node

	len int
}

type Node[T any] struct {
	Next *Node[T] // Pointer to the next node in the list
	Prev *Node[T] // Pointer to the previous node in the list
	Data T        // The data contained in the node
}

func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of linked nodes.
func (l *List[T]) Len() int {
	return l.len
}

// Append links a new node at the end of the list.
func (l *List[T]) Append(newNode *Node[T]) {
	newNode.Prev = l.Last
	newNode.Next = nil
	if lastNode := l.Last; lastNode != nil {
		lastNode.Next = newNode
	} else {
		// Empty list
		l.First = newNode
	}
	l.Last = newNode
	l.len++
}

// PushBack wraps data in a node, appends it and returns the node handle.
func (l *List[T]) PushBack(data T) *Node[T] {
	node := &Node[T]{Data: data}
	l.Append(node)
	return node
}

// Remove unlinks a node from the list. The node's own links are cleared so
// a stale handle cannot walk back into the list.
func (l *List[T]) Remove(node *Node[T]) {
	if prevNode := node.Prev; prevNode != nil {
		prevNode.Next = node.Next
	} else {
		l.First = node.Next
	}

	if nextNode := node.Next; nextNode != nil {
		nextNode.Prev = node.Prev
	} else {
		l.Last = node.Prev
	}
	node.Next = nil
	node.Prev = nil
	l.len--
}

// Find returns the first node whose data satisfies match, or nil.
func (l *List[T]) Find(match func(T) bool) *Node[T] {
	for node := l.First; node != nil; node = node.Next {
		if match(node.Data) {
			return node
		}
	}
	return nil
}

// All yields the data of every node in list order. The next pointer is read
// before yielding, so the current node may be removed during iteration.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l.First; node != nil; {
			next := node.Next
			if !yield(node.Data) {
				return
			}
			node = next
		}
	}
}

// Nodes is like All but yields the node handles with their position.
func (l *List[T]) Nodes() iter.Seq2[int, *Node[T]] {
	return func(yield func(int, *Node[T]) bool) {
		i := 0
		for node := l.First; node != nil; {
			next := node.Next
			if !yield(i, node) {
				return
			}
			node = next
			i++
		}
	}
}
