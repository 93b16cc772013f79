package command

func NewCommands() []Command {
	return []Command{
		NewModelCommand(),
		NewContextCommand(),
		NewClearCommand(),
		NewForgetCommand(),
		NewHealthCommand(),
	}
}
