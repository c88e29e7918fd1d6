package types

// ConsoleInterface defines the terminal output surface used by the use cases.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
}

// StatusHandle updates a transient status message (a spinner on real
// terminals).
type StatusHandle interface {
	Update(message string)
	Stop()
}
