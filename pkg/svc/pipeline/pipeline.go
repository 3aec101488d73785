// Package pipeline turns a resolved machine configuration into the ordered
// provisioning sequence that installs it: partition, install, detach, export.
// Every step's preconditions are the previous step's postconditions, so the
// sequence is fail-fast and never reordered at execution time.
package pipeline

// StepKind names the provisioning phase a step belongs to.
type StepKind string

// The provisioning phases, listed in execution order.
const (
	StepPartition   StepKind = "partition"
	StepInstall     StepKind = "install"
	StepCopyPayload StepKind = "copy-payload"
	StepDetach      StepKind = "detach"
	StepExportPool  StepKind = "export-pool"
	StepReboot      StepKind = "reboot"
)

// Arg is one argument of a step command. Quote marks operator-supplied
// operands so shell renderings keep them visibly delimited even when no
// escaping would be needed; fixed command words and flags stay bare.
type Arg struct {
	Value string
	Quote bool
}

// Word returns a bare argument for fixed command words and flags.
func Word(value string) Arg {
	return Arg{Value: value}
}

// Operand returns a quoted argument for operator-supplied values such as
// device paths, pool names and store paths.
func Operand(value string) Arg {
	return Arg{Value: value, Quote: true}
}

// Command is the argument vector of one external command.
type Command []Arg

// Words returns a Command of bare arguments.
func Words(values ...string) Command {
	command := make(Command, 0, len(values))
	for _, value := range values {
		command = append(command, Word(value))
	}

	return command
}

// Argv returns the raw argument values for executors that run the command
// directly instead of rendering it for a shell.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c))
	for _, arg := range c {
		argv = append(argv, arg.Value)
	}

	return argv
}

// Step is one ordered, fail-fast unit of provisioning work.
type Step struct {
	Kind        StepKind
	Description string
	Command     Command

	// AbortOnFailure halts all remaining steps when the command exits
	// non-zero. Emitters must render this explicitly rather than rely on a
	// runtime's implicit error handling.
	AbortOnFailure bool
}

// Pipeline is the complete provisioning sequence for one machine. Steps run
// strictly one after another; the disk state left by each step is the input
// of the next. There is no automatic rollback of a partially completed run.
type Pipeline struct {
	Device    string
	MountRoot string

	// Pools lists the storage pools the resolved layout references, in
	// declaration order.
	Pools []string

	Steps []Step
}
