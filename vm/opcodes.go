package vm

// Handler performs one opcode step on st. arg is the opcode's raw argument
// text; handlers that take no argument ignore it.
//
// Unless a handler terminates or jumps it advances st.Pointer by exactly
// one on success. On failure it returns an error and leaves the pointer
// where it was.
type Handler func(st *State, arg string) error

// OpcodeInfo provides metadata about each opcode for tooling and validation.
type OpcodeInfo struct {
	Name      string // Registry key, e.g. "BINARY_ADD"
	StackPop  int    // How many values popped from stack (-1 = depends on arg)
	StackPush int    // How many values pushed to stack (-1 = depends on arg)
	Arg       string // What the argument text means; empty if unused
	Doc       string // One-line description
}

// Opcode pairs an opcode's metadata with its handler. It is one row of a
// registry table.
type Opcode struct {
	OpcodeInfo
	Handler Handler
}

// Opcode names.
const (
	OpEnd             = "END"
	OpSetLineNo       = "SET_LINE_NO"
	OpStore           = "STORE"
	OpLoad            = "LOAD"
	OpLoadInteger     = "LOAD_INTEGER"
	OpLoadString      = "LOAD_STRING"
	OpBinaryAdd       = "BINARY_ADD"
	OpBinarySub       = "BINARY_SUB"
	OpBinaryDiv       = "BINARY_DIV"
	OpBinaryMul       = "BINARY_MUL"
	OpCompareSame     = "COMPARE_SAME"
	OpCompareNSame    = "COMPARE_NSAME"
	OpCompareSmaller  = "COMPARE_SMALLER"
	OpCompareNSmaller = "COMPARE_NSMALLER"
	OpDupTopX         = "DUP_TOPX"
	OpPopTopX         = "POP_TOPX"
	OpRotTwo          = "ROT_TWO"
	OpJump            = "JUMP"
	OpPopJumpIfFalse  = "POP_JUMP_IF_FALSE"
	OpPopJumpIfTrue   = "POP_JUMP_IF_TRUE"
	OpRepeatStep      = "REPEAT_STEP"
)

// builtinOpcodes is the single declarative table the default registry is
// built from. Its order is the order of PublicOpcodes.
var builtinOpcodes = []Opcode{
	// Control
	{OpcodeInfo{OpEnd, 0, 0, "", "Terminate execution"}, opEnd},
	{OpcodeInfo{OpSetLineNo, 0, 0, "line", "Record the current source line"}, opSetLineNo},

	// Variables
	{OpcodeInfo{OpStore, 1, 0, "name", "Pop TOS and bind it to name"}, opStore},
	{OpcodeInfo{OpLoad, 0, 1, "name", "Push the value bound to name, 0 if unbound"}, opLoad},

	// Constants
	{OpcodeInfo{OpLoadInteger, 0, 1, "integer", "Push an integer literal"}, opLoadInteger},
	{OpcodeInfo{OpLoadString, 0, 1, "text", "Push the argument as text"}, opLoadString},

	// Arithmetic
	{OpcodeInfo{OpBinaryAdd, 2, 1, "", "Pop b, pop a, push a + b"}, opBinaryAdd},
	{OpcodeInfo{OpBinarySub, 2, 1, "", "Pop TOS, pop NOS, push TOS - NOS"}, opBinarySub},
	{OpcodeInfo{OpBinaryDiv, 2, 1, "", "Pop TOS, pop NOS, push TOS / NOS truncated"}, opBinaryDiv},
	{OpcodeInfo{OpBinaryMul, 2, 1, "", "Pop TOS, pop NOS, push TOS * NOS"}, opBinaryMul},

	// Comparison
	{OpcodeInfo{OpCompareSame, 2, 1, "", "Push 1 if TOS equals NOS, else 0"}, opCompareSame},
	{OpcodeInfo{OpCompareNSame, 2, 1, "", "Push 1 if TOS differs from NOS, else 0"}, opCompareNSame},
	{OpcodeInfo{OpCompareSmaller, 2, 1, "", "Push 1 if TOS < NOS, else 0"}, opCompareSmaller},
	{OpcodeInfo{OpCompareNSmaller, 2, 1, "", "Push 1 if TOS >= NOS, else 0"}, opCompareNSmaller},

	// Stack manipulation
	{OpcodeInfo{OpDupTopX, -1, -1, "count", "Duplicate the top count values"}, opDupTopX},
	{OpcodeInfo{OpPopTopX, -1, 0, "count", "Discard the top count values"}, opPopTopX},
	{OpcodeInfo{OpRotTwo, 2, 2, "", "Swap TOS and NOS"}, opRotTwo},

	// Jumps
	{OpcodeInfo{OpJump, 0, 0, "target", "Jump to target"}, opJump},
	{OpcodeInfo{OpPopJumpIfFalse, 1, 0, "target", "Pop TOS, jump to target if falsy"}, opPopJumpIfFalse},
	{OpcodeInfo{OpPopJumpIfTrue, 1, 0, "target", "Pop TOS, jump to target if truthy"}, opPopJumpIfTrue},
	{OpcodeInfo{OpRepeatStep, -1, 0, "target", "Step a repeat counter toward its end or leave the loop"}, opRepeatStep},
}
