package vm

// ---------------------------------------------------------------------------
// Operand helpers
// ---------------------------------------------------------------------------

// popOperands checks for two values, then pops TOS and NOS.
//
// The depth check happens before any pop, so an underflow leaves the stack
// untouched. Kind checks happen after both pops: a TypeMismatch from the
// caller discards the popped operands rather than restoring them.
func popOperands(st *State) (tos, nos Value, err error) {
	if err = st.Stack.Require(2); err != nil {
		return Value{}, Value{}, err
	}
	tos, _ = st.Stack.Pop()
	nos, _ = st.Stack.Pop()
	return tos, nos, nil
}

// popIntegers is popOperands followed by an Integer check on both values.
func popIntegers(st *State) (tos, nos int, err error) {
	a, b, err := popOperands(st)
	if err != nil {
		return 0, 0, err
	}
	if tos, err = a.AsInteger(); err != nil {
		return 0, 0, err
	}
	if nos, err = b.AsInteger(); err != nil {
		return 0, 0, err
	}
	return tos, nos, nil
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

// opBinaryAdd pops b (TOS) then a (NOS) and pushes a + b. Overflow wraps.
func opBinaryAdd(st *State, _ string) error {
	b, a, err := popIntegers(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromInteger(a + b))
	st.Advance()
	return nil
}

func opBinarySub(st *State, _ string) error {
	tos, nos, err := popIntegers(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromInteger(tos - nos))
	st.Advance()
	return nil
}

// opBinaryDiv truncates toward zero.
func opBinaryDiv(st *State, _ string) error {
	tos, nos, err := popIntegers(st)
	if err != nil {
		return err
	}
	if nos == 0 {
		return ErrDivisionByZero
	}
	st.Stack.Push(FromInteger(tos / nos))
	st.Advance()
	return nil
}

func opBinaryMul(st *State, _ string) error {
	tos, nos, err := popIntegers(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromInteger(tos * nos))
	st.Advance()
	return nil
}

// ---------------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------------

// opCompareSame accepts any kinds; values of different kinds are never
// the same.
func opCompareSame(st *State, _ string) error {
	tos, nos, err := popOperands(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromBool(tos.Equal(nos)))
	st.Advance()
	return nil
}

func opCompareNSame(st *State, _ string) error {
	tos, nos, err := popOperands(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromBool(!tos.Equal(nos)))
	st.Advance()
	return nil
}

func opCompareSmaller(st *State, _ string) error {
	tos, nos, err := popIntegers(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromBool(tos < nos))
	st.Advance()
	return nil
}

func opCompareNSmaller(st *State, _ string) error {
	tos, nos, err := popIntegers(st)
	if err != nil {
		return err
	}
	st.Stack.Push(FromBool(tos >= nos))
	st.Advance()
	return nil
}
