//go:build unix

package launcher

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts cmd in its own process group so signalGroup can
// reach every descendant it spawns, not just the immediate child.
func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// applyCredentials sets the uid/gid the child process runs under.
func applyCredentials(cmd *exec.Cmd, uid, gid uint32) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Credential = &syscall.Credential{Uid: uid, Gid: gid}
}

// signalGroup delivers sig to the negative pid, i.e. the whole process
// group created by setProcessGroup.
func signalGroup(pid int, sig syscall.Signal) error {
	return syscall.Kill(-pid, sig)
}
