package runner

import "os"

// Privileges is the command prefix policy, decided once at startup.
//
// Run as a regular user, elevated commands are prefixed with sudo. Run as
// root through sudo, elevated commands run bare and unprivileged commands
// drop back to the invoking user with sudo -u.
type Privileges struct {
	ElevatedPrefix     []string
	UnprivilegedPrefix []string
}

// DetectPrivileges returns the policy for a process with the given uid and
// SUDO_USER value.
func DetectPrivileges(uid int, sudoUser string) Privileges {
	if uid == 0 && sudoUser != "" {
		return Privileges{
			UnprivilegedPrefix: []string{"sudo", "-u", sudoUser},
		}
	}
	return Privileges{
		ElevatedPrefix: []string{"sudo"},
	}
}

// CurrentPrivileges returns the policy for the running process.
func CurrentPrivileges() Privileges {
	return DetectPrivileges(os.Getuid(), os.Getenv("SUDO_USER"))
}

// Argv returns the full argument vector for cmd, including any prefix.
func (p Privileges) Argv(cmd Command) []string {
	prefix := p.UnprivilegedPrefix
	if cmd.Privilege == Elevated {
		prefix = p.ElevatedPrefix
	}

	argv := make([]string, 0, len(prefix)+len(cmd.Args)+1)
	argv = append(argv, prefix...)
	argv = append(argv, cmd.Name)
	return append(argv, cmd.Args...)
}
