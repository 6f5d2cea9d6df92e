package variable

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefaultCommandTimeout bounds a dynamic variable command unless the
	// project config overrides it.
	DefaultCommandTimeout = 5 * time.Second

	sigkillDelay = 200 * time.Millisecond
)

// Executor runs shell commands for dynamic variables. Execution is gated
// by Enabled; with the gate closed every call fails with DisabledError and
// no subprocess is spawned. Each call is a fresh process; there are no
// retries.
type Executor struct {
	// Enabled is the security gate, sourced from settings.allow_commands.
	Enabled bool
	// Timeout bounds each command. Zero means DefaultCommandTimeout.
	Timeout time.Duration
	// WorkDir is the working directory for commands.
	WorkDir string

	shell  string
	warned bool
}

// NewExecutor creates an executor. Commands run through the system shell
// in workDir.
func NewExecutor(enabled bool, timeout time.Duration, workDir string) *Executor {
	return &Executor{
		Enabled: enabled,
		Timeout: timeout,
		WorkDir: workDir,
		shell:   detectShell(),
	}
}

// Execute runs command through the system shell and returns its stdout
// with trailing whitespace stripped.
func (e *Executor) Execute(ctx context.Context, command string) (string, error) {
	if !e.Enabled {
		return "", &DisabledError{Command: command}
	}

	if name := rootExecutable(command); name != "" {
		if _, err := exec.LookPath(name); err != nil {
			return "", &NotFoundError{Command: command, Executable: name}
		}
	}

	if !e.warned {
		e.warned = true
		log.Warn().Msg("command execution is enabled: variable commands will run in your shell")
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(cmdCtx, e.shell, "/c", command)
	} else {
		cmd = exec.CommandContext(cmdCtx, e.shell, "-c", command)
	}
	cmd.Dir = e.WorkDir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Run the command in its own process group so a timeout kills the
	// whole tree, not just the shell.
	if runtime.GOOS != "windows" {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmd.Cancel = func() error {
			return killGroup(cmd)
		}
	}

	log.Debug().Str("command", command).Dur("timeout", timeout).Msg("executing variable command")

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return "", &TimeoutError{Command: command, Timeout: timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code == 127 {
				return "", &NotFoundError{Command: command, Executable: rootExecutable(command)}
			}
			return "", &ExitError{
				Command:  command,
				ExitCode: code,
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", err
	}

	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

// killGroup terminates the command's process group, escalating to SIGKILL
// if it does not exit promptly.
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		return syscall.Kill(-pid, syscall.SIGKILL)
	}
	time.Sleep(sigkillDelay)
	if cmd.ProcessState == nil {
		return syscall.Kill(-pid, syscall.SIGKILL)
	}
	return nil
}

// rootExecutable parses command and returns the name of the first
// executable invoked, or "" when the name cannot be determined statically
// (dynamic expansion, shell builtins, parse errors).
func rootExecutable(command string) string {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return ""
	}

	var name string
	syntax.Walk(file, func(node syntax.Node) bool {
		if name != "" {
			return false
		}
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		name = literalWord(call.Args[0])
		return false
	})

	if name == "" || strings.ContainsAny(name, "$`") || shellBuiltins[name] {
		return ""
	}
	if strings.Contains(name, "/") {
		// Explicit path, let the shell resolve it.
		return ""
	}
	return name
}

// literalWord renders a word composed only of literal and quoted parts.
// Words containing expansions return their raw approximation, which the
// caller rejects.
func literalWord(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, qp := range p.Parts {
				if lit, ok := qp.(*syntax.Lit); ok {
					sb.WriteString(lit.Value)
				}
			}
		default:
			sb.WriteString("$")
		}
	}
	return sb.String()
}

var shellBuiltins = map[string]bool{
	"cd": true, "echo": true, "printf": true, "pwd": true, "test": true,
	"true": true, "false": true, "set": true, "export": true, "read": true,
	"exit": true, "eval": true, "exec": true, ":": true, "[": true,
}

func detectShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash
	}
	return "/bin/sh"
}
