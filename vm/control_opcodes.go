package vm

// opEnd marks the state terminated. Stack and pointer are left as they are.
func opEnd(st *State, _ string) error {
	st.Terminate()
	return nil
}

func opSetLineNo(st *State, arg string) error {
	line, err := parseCount(OpSetLineNo, arg)
	if err != nil {
		return err
	}
	st.LineNo = line
	st.Advance()
	return nil
}

func parseTarget(op, arg string) (int, error) {
	return parseCount(op, arg)
}

func opJump(st *State, arg string) error {
	target, err := parseTarget(OpJump, arg)
	if err != nil {
		return err
	}
	return st.Jump(target)
}

func opPopJumpIfFalse(st *State, arg string) error {
	return popJumpIf(st, OpPopJumpIfFalse, arg, false)
}

func opPopJumpIfTrue(st *State, arg string) error {
	return popJumpIf(st, OpPopJumpIfTrue, arg, true)
}

// popJumpIf pops TOS and jumps when its truthiness equals want. The target
// is parsed before the pop so a bad argument leaves the stack alone.
func popJumpIf(st *State, op, arg string, want bool) error {
	target, err := parseTarget(op, arg)
	if err != nil {
		return err
	}
	top, err := st.Stack.Pop()
	if err != nil {
		return err
	}
	if top.Truthy() == want {
		return st.Jump(target)
	}
	st.Advance()
	return nil
}

// opRepeatStep drives a counted loop whose [end, current] pair sits on top
// of the stack. When current reaches end both are popped and execution
// falls through; otherwise current moves one step toward end and control
// jumps back to target. Both values are validated before anything changes.
func opRepeatStep(st *State, arg string) error {
	target, err := parseTarget(OpRepeatStep, arg)
	if err != nil {
		return err
	}
	if err := st.Stack.Require(2); err != nil {
		return err
	}
	pair := st.Stack.top(2)
	end, err := pair[0].AsInteger()
	if err != nil {
		return err
	}
	current, err := pair[1].AsInteger()
	if err != nil {
		return err
	}

	if current == end {
		st.Stack.Pop()
		st.Stack.Pop()
		st.Advance()
		return nil
	}

	step := 1
	if current > end {
		step = -1
	}
	pair[1] = FromInteger(current + step)
	return st.Jump(target)
}
