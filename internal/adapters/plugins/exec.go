package plugins

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

type execOptions struct {
	Command []string          `yaml:"command" validate:"min=1"`
	Dir     string            `yaml:"dir"`
	Env     map[string]string `yaml:"env"`
}

// execSource runs a command and creates a node for every JSON object line it
// prints to stdout. Stderr is forwarded to the logger.
type execSource struct {
	command []string
	dir     string
	env     map[string]string
}

func newExecSource(plugin *domain.Plugin, cfg *domain.Config) (ports.NodeSourcer, error) {
	opts, err := decodeOptions[execOptions](plugin)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = cfg.Root
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.Root, dir)
	}
	return &execSource{command: opts.Command, dir: dir, env: opts.Env}, nil
}

func (s *execSource) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	name := s.command[0]
	env := resolveEnvironment(os.Environ(), s.env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, s.command[1:]...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = s.dir
	cmd.Env = env

	stderr := &logWriter{logger: args.Logger, prefix: "[" + ExecPlugin + "] "}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, domain.ErrCommandFailed.Error())
	}
	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", strings.Join(s.command, " "))
	}

	readErr := s.createNodes(ctx, args.Actions, stdout)
	if readErr != nil {
		// Drain so the command is not blocked on a full pipe.
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()
	stderr.Flush()

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(domain.ErrCommandFailed, waitErr.Error()), "exit_code", exitCode)
	}
	return readErr
}

func (s *execSource) createNodes(ctx context.Context, actions ports.NodeActions, r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if cerr := createFromLine(ctx, actions, trimmed); cerr != nil {
				return cerr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read command output")
		}
	}
}

func createFromLine(ctx context.Context, actions ports.NodeActions, line []byte) error {
	var node domain.Node
	if err := json.Unmarshal(line, &node); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidNode, err.Error()), "line", string(line))
	}
	if node.Internal.ContentDigest == "" {
		digest, err := domain.ContentDigest(node.Fields)
		if err != nil {
			return err
		}
		node.Internal.ContentDigest = digest
	}
	return actions.CreateNode(ctx, &node)
}

// logWriter forwards complete lines to the logger as warnings.
type logWriter struct {
	logger ports.Logger
	prefix string

	mu  sync.Mutex
	buf []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *logWriter) emit(line []byte) {
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	w.logger.Warn(w.prefix + string(line))
}

// resolveEnvironment overlays overrides on the system environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var pathList string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			pathList = v
			break
		}
	}
	if pathList == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func isExecutable(file string) bool {
	d, err := os.Stat(file)
	if err != nil {
		return false
	}
	m := d.Mode()
	return !m.IsDir() && m&0o111 != 0
}
