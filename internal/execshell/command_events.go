package execshell

// CommandEventObserver receives lifecycle notifications for commands run by a ShellExecutor.
type CommandEventObserver interface {
	// CommandStarted is called before the process is launched.
	CommandStarted(command ShellCommand)
	// CommandCompleted receives the result of a process that ran to completion, including non-zero exits.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports a process that could not be run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}
