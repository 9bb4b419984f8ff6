package token

import (
	"fmt"
	"iter"
)

// Node wraps a Token inside a Stream. The node keeps a back-reference to its
// owning stream for membership checks; the reference never implies ownership.
type Node struct {
	// Token is the payload. It may be mutated in place by the classifier.
	Token Token

	prev, next *Node
	stream     *Stream
}

// Prev returns the preceding node, or nil at the stream start.
func (n *Node) Prev() *Node { return n.prev }

// Next returns the following node, or nil at the stream end.
func (n *Node) Next() *Node { return n.next }

// InStream reports whether the node currently belongs to s.
func (n *Node) InStream(s *Stream) bool { return n.stream == s }

// Predicate selects tokens during a matching scan.
type Predicate func(*Token) bool

// Stream is a doubly linked sequence of tokens supporting O(1) local edits
// relative to a reference node. The classifier builds and edits a stream while
// iterating over it; a removed node keeps its outgoing links so that an
// iteration positioned on it can continue to the right.
type Stream struct {
	first, last *Node
	size        int
}

// NewStream returns a stream seeded with the given tokens in order.
func NewStream(tokens ...Token) *Stream {
	s := &Stream{}
	for _, t := range tokens {
		s.Append(t)
	}
	return s
}

// First returns the first node, or nil for an empty stream.
func (s *Stream) First() *Node { return s.first }

// Last returns the last node, or nil for an empty stream.
func (s *Stream) Last() *Node { return s.last }

// Len returns the number of nodes currently in the stream.
func (s *Stream) Len() int { return s.size }

// Append adds a token at the end of the stream and returns its node.
func (s *Stream) Append(t Token) *Node {
	n := &Node{Token: t, prev: s.last, stream: s}
	if s.last != nil {
		s.last.next = n
	}
	if s.first == nil {
		s.first = n
	}
	s.last = n
	s.size++
	return n
}

// InsertLeft inserts a token immediately before ref and returns the new node.
// ref must belong to this stream.
func (s *Stream) InsertLeft(t Token, ref *Node) *Node {
	if ref == nil || ref.stream != s {
		panic("token: InsertLeft reference node does not belong to this stream")
	}
	n := &Node{Token: t, prev: ref.prev, next: ref, stream: s}
	if ref.prev != nil {
		ref.prev.next = n
	}
	ref.prev = n
	if s.first == ref {
		s.first = n
	}
	s.size++
	return n
}

// Remove detaches n from the stream and repairs its neighbors' links. The
// removed node keeps its own prev/next pointers so that traversals holding it
// can still advance. Removing a node that does not belong to the stream is an
// error and leaves the stream unchanged.
func (s *Stream) Remove(n *Node) error {
	if n == nil || n.stream != s {
		return fmt.Errorf("token: node does not belong to this stream")
	}
	if s.first == n {
		s.first = n.next
	}
	if s.last == n {
		s.last = n.prev
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.stream = nil
	s.size--
	return nil
}

// Nodes iterates over the stream from first to last. The successor of the
// current node is read after the loop body runs, so a body that inserts to the
// left of the current node and removes it resumes at the original successor.
func (s *Stream) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := s.first; n != nil; {
			if !yield(n) {
				return
			}
			n = n.next
		}
	}
}

// NextMatching scans forward from start (exclusive) and returns the first node
// whose token satisfies match, skipping nodes whose token satisfies ignore.
// A nil ignore skips nothing. Returns nil when the scan reaches the stream end.
func (s *Stream) NextMatching(start *Node, match, ignore Predicate) *Node {
	return s.findMatching(start, match, ignore, true)
}

// PreviousMatching is the backward counterpart of NextMatching.
func (s *Stream) PreviousMatching(start *Node, match, ignore Predicate) *Node {
	return s.findMatching(start, match, ignore, false)
}

func (s *Stream) findMatching(start *Node, match, ignore Predicate, forward bool) *Node {
	step := func(n *Node) *Node { return n.next }
	if !forward {
		step = func(n *Node) *Node { return n.prev }
	}
	for n := step(start); n != nil; n = step(n) {
		if ignore != nil && ignore(&n.Token) {
			continue
		}
		if match(&n.Token) {
			return n
		}
	}
	return nil
}

// Tokens materializes the current order into a slice without altering the
// stream.
func (s *Stream) Tokens() []Token {
	out := make([]Token, 0, s.size)
	for n := s.first; n != nil; n = n.next {
		out = append(out, n.Token)
	}
	return out
}
