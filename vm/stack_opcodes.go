package vm

import (
	"strconv"
	"strings"
)

// parseInt reads an integer argument. Surrounding whitespace is ignored.
func parseInt(op, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, badArgument(op, arg, err)
	}
	return n, nil
}

// parseCount reads a non-negative count argument.
func parseCount(op, arg string) (int, error) {
	n, err := parseInt(op, arg)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, badArgument(op, arg, nil)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

func opLoadInteger(st *State, arg string) error {
	n, err := parseInt(OpLoadInteger, arg)
	if err != nil {
		return err
	}
	st.Stack.Push(FromInteger(n))
	st.Advance()
	return nil
}

// opLoadString pushes arg verbatim.
func opLoadString(st *State, arg string) error {
	st.Stack.Push(FromText(arg))
	st.Advance()
	return nil
}

// ---------------------------------------------------------------------------
// Stack manipulation
// ---------------------------------------------------------------------------

// opDupTopX pushes copies of the top count values, keeping their order:
// [a b c] with count 2 becomes [a b c b c]. A count of 0 is a no-op.
func opDupTopX(st *State, arg string) error {
	count, err := parseCount(OpDupTopX, arg)
	if err != nil {
		return err
	}
	if err := st.Stack.Require(count); err != nil {
		return err
	}
	dups := make([]Value, count)
	copy(dups, st.Stack.top(count))
	for _, v := range dups {
		st.Stack.Push(v)
	}
	st.Advance()
	return nil
}

// opPopTopX discards the top count values. The depth is checked first so
// a short stack is left intact.
func opPopTopX(st *State, arg string) error {
	count, err := parseCount(OpPopTopX, arg)
	if err != nil {
		return err
	}
	if err := st.Stack.Require(count); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		st.Stack.Pop()
	}
	st.Advance()
	return nil
}

func opRotTwo(st *State, _ string) error {
	tos, nos, err := popOperands(st)
	if err != nil {
		return err
	}
	st.Stack.Push(tos)
	st.Stack.Push(nos)
	st.Advance()
	return nil
}
