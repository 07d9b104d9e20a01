package vm

// opStore pops TOS and binds it to the variable named by arg.
func opStore(st *State, arg string) error {
	v, err := st.Stack.Pop()
	if err != nil {
		return err
	}
	st.Bind(arg, v)
	st.Advance()
	return nil
}

// opLoad pushes the variable named by arg. Unbound names load as 0.
func opLoad(st *State, arg string) error {
	st.Stack.Push(st.Lookup(arg))
	st.Advance()
	return nil
}
