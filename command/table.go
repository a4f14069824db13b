package command

import "fmt"

// Table is an ordered list of command strings. Lookup wraps with index mod length.
type Table []string

var (
	LinuxCommands = Table{
		"ls", "cd", "pwd", "mkdir", "rmdir", "rm", "cp", "mv", "touch", "cat",
		"less", "head", "tail", "chmod", "chown", "find", "file",
	}
	PythonCommands = Table{
		"print()", "input()", "if-else", "for loop", "while loop", "def function()",
		"try-except", "import module", "list append()", "dict access",
	}
	JavaCommands = Table{
		"System.out.println()", "public class", "for loop", "if-else", "try-catch",
		"import java.util.*", "ArrayList add()", "HashMap put()", "Thread start()",
	}
)

// TableFor returns the vocabulary of mode. The default mode shares the Linux table.
func TableFor(mode Mode) (Table, error) {
	switch mode {
	case ModeDefault, ModeLinux:
		return LinuxCommands, nil
	case ModePython:
		return PythonCommands, nil
	case ModeJava:
		return JavaCommands, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

// At returns the command for index, wrapping around the table length.
func (t Table) At(index int) string {
	n := len(t)
	return t[((index%n)+n)%n]
}
