package config

import (
	"os/exec"
	"runtime"
	"strings"
)

// RunHooks executes each hook through the shell, in order, from dir.
// Output is echoed through logf. A failing hook is reported but does not
// stop the run.
func RunHooks(hooks []string, dir string, logf func(format string, args ...any)) {
	for _, hook := range hooks {
		logf("running hook: %q", hook)

		var cmd *exec.Cmd
		if runtime.GOOS == "windows" {
			cmd = exec.Command("cmd", "/C", hook)
		} else {
			cmd = exec.Command("sh", "-c", hook)
		}
		cmd.Dir = dir

		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			logf("hook output: %s", strings.TrimSpace(string(out)))
		}
		if err != nil {
			logf("hook failed: %v", err)
		}
	}
}
