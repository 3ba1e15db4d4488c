// Package rpncalc implements an infix arithmetic calculator.
//
// Evaluation runs in three stages. A Variant validates the raw text,
// rejecting stray characters, unbalanced parentheses and oversized input.
// The validated text is converted with the shunting-yard algorithm into a
// sequence of tokens in postfix order, and that sequence is folded over an
// operand stack to a single number.
//
// The operators are + - * / and right-associative ^, with prefix signs.
// Variants may additionally enable the postfix factorial "5!", the prefix
// functions "log" (base 2) and "exp", and integer division "7//2".
//
// Every failure is an error implementing InputError which wraps exactly one
// of the Err* kinds, so callers can use errors.Is to classify it. Nothing in
// the package retains state between calls; a Variant may be shared by any
// number of goroutines.
package rpncalc
