package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ayoisaiah/studytrack/internal/osutil"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editorCommand prepares a command that opens the user's preferred text
// editor on the given file.
func editorCommand(path string) *exec.Cmd {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, path)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd
}

// composeNote opens the editor on a scratch file so a longer session
// note can be written there.
func composeNote(initial string) (string, error) {
	f, err := os.CreateTemp("", "studytrack-note-")
	if err != nil {
		return "", err
	}

	name := f.Name()

	defer os.Remove(name)

	_, err = f.WriteString(initial)
	if err != nil {
		f.Close()
		return "", err
	}

	err = f.Close()
	if err != nil {
		return "", err
	}

	err = editorCommand(name).Run()
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}
