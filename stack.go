package rpncalc

import "github.com/emirpasic/gods/stacks/arraystack"

// opstack is the converter's stack of pending operators and open
// parentheses.
type opstack struct {
	s *arraystack.Stack
}

func newOpstack() opstack {
	return opstack{s: arraystack.New()}
}

func (s opstack) push(tok Token) {
	s.s.Push(tok)
}

func (s opstack) pop() (Token, bool) {
	v, ok := s.s.Pop()
	if !ok {
		return Token{}, false
	}
	return v.(Token), true
}

func (s opstack) peek() (Token, bool) {
	v, ok := s.s.Peek()
	if !ok {
		return Token{}, false
	}
	return v.(Token), true
}

// valstack is the evaluator's operand stack.
type valstack[T any] struct {
	s *arraystack.Stack
}

func newValstack[T any]() valstack[T] {
	return valstack[T]{s: arraystack.New()}
}

func (s valstack[T]) push(v T) {
	s.s.Push(v)
}

// pop removes the top operand. Callers check len first.
func (s valstack[T]) pop() T {
	v, ok := s.s.Pop()
	if !ok {
		panic("rpncalc: pop from empty operand stack")
	}
	return v.(T)
}

func (s valstack[T]) len() int {
	return s.s.Size()
}
