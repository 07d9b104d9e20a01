// Package vm implements the execution core of the DBN bytecode interpreter.
//
// This package contains:
//   - Tagged Value representation (Integer or Text)
//   - The LIFO operand Stack
//   - The Interpreter State threaded through every opcode
//   - Opcode handlers and the immutable Registry that names them
//
// Reading programs and driving the fetch-execute loop belong to the caller.
// A driver looks up the opcode at State.Pointer, invokes it through Call,
// and repeats until State.Terminated is set:
//
//	var st vm.State
//	for !st.Terminated {
//		ins := program[st.Pointer]
//		if err := vm.Call(ins.Op, &st, ins.Arg); err != nil {
//			return err
//		}
//	}
package vm
