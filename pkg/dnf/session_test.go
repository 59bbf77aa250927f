package dnf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// fakeRunner scripts one Result per command invocation, in order.
type fakeRunner struct {
	results []Result
	errs    []error
	calls   [][]string
}

func (f *fakeRunner) Run(ctx context.Context, command string, args ...string) (Result, error) {
	i := len(f.calls)
	f.calls = append(f.calls, append([]string{command}, args...))
	if i >= len(f.results) {
		return Result{}, errors.New("unexpected command")
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.results[i], err
}

func newTestSession(opts engine.Options, run Runner) *Session {
	return &Session{opts: opts, run: run, log: zerolog.Nop()}
}

func TestOpenMissingConfPath(t *testing.T) {
	_, err := Open(context.Background(), engine.Options{
		ConfFile: "/does/not/exist/dnf.conf",
	}, zerolog.Nop())
	if !engine.IsConfiguration(err) {
		t.Fatalf("error = %v, want configuration", err)
	}
}

func TestBaseArgsRepoFilterOrder(t *testing.T) {
	sess := newTestSession(engine.Options{
		Repos: engine.RepoFilter{
			Enable:  []string{"testing"},
			Disable: []string{"testing", "updates"},
		},
	}, nil)

	args := sess.baseArgs()
	joined := strings.Join(args, " ")
	want := "--disablerepo=testing --disablerepo=updates --enablerepo=testing"
	if joined != want {
		t.Errorf("baseArgs = %q, want %q (disable before enable)", joined, want)
	}
}

func TestBaseArgsConfAndGPG(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "dnf.conf")
	if err := os.WriteFile(conf, []byte("[main]\ngpgcheck=0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	parsed, err := loadConf(conf)
	if err != nil {
		t.Fatalf("loadConf: %v", err)
	}

	sess := newTestSession(engine.Options{ConfFile: conf}, nil)
	sess.conf = parsed

	args := strings.Join(sess.baseArgs(), " ")
	if !strings.Contains(args, "--config "+conf) {
		t.Errorf("baseArgs = %q, missing config flag", args)
	}
	if !strings.Contains(args, "--nogpgcheck") {
		t.Errorf("baseArgs = %q, conf gpgcheck=0 should disable signature checking", args)
	}
}

func TestBaseArgsInstallRoot(t *testing.T) {
	sess := newTestSession(engine.Options{InstallRoot: "/mnt/sysimage"}, nil)
	if !strings.Contains(strings.Join(sess.baseArgs(), " "), "--installroot=/mnt/sysimage") {
		t.Errorf("baseArgs = %v, missing install root flag", sess.baseArgs())
	}
}

func TestBaseArgsGPGDefaultOn(t *testing.T) {
	sess := newTestSession(engine.Options{}, nil)
	if strings.Contains(strings.Join(sess.baseArgs(), " "), "--nogpgcheck") {
		t.Error("signature checking disabled without being asked")
	}
}

func TestResolveParsesDeclinedTransaction(t *testing.T) {
	stdout := `Dependencies resolved.
Installing:
 httpd            x86_64    2.4.6-45.el7        base                    2.7 M

Transaction Summary
Operation aborted.
`
	run := &fakeRunner{
		results: []Result{{Stdout: stdout, ExitCode: 1}},
		errs:    []error{errors.New("exit status 1")},
	}
	sess := newTestSession(engine.Options{}, run)
	if err := sess.Install("httpd"); err != nil {
		t.Fatal(err)
	}

	tx, err := sess.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(tx.Install) != 1 || tx.Install[0].Name != "httpd" {
		t.Errorf("transaction = %+v", tx)
	}

	call := strings.Join(run.calls[0], " ")
	if !strings.Contains(call, "install --assumeno httpd") {
		t.Errorf("resolve command = %q", call)
	}
}

func TestResolveClassifiesMissingPackage(t *testing.T) {
	run := &fakeRunner{
		results: []Result{{Stderr: "Error: Unable to find a match: nosuchpkg\n", ExitCode: 1}},
		errs:    []error{errors.New("exit status 1")},
	}
	sess := newTestSession(engine.Options{}, run)
	if err := sess.Install("nosuchpkg"); err != nil {
		t.Fatal(err)
	}

	_, err := sess.Resolve(context.Background())
	if !engine.IsNotFound(err) {
		t.Fatalf("error = %v, want not-found", err)
	}
}

func TestCommitRunsConfirmed(t *testing.T) {
	run := &fakeRunner{results: []Result{{Stdout: "Complete!\n"}}}
	sess := newTestSession(engine.Options{}, run)
	if err := sess.Remove("telnet"); err != nil {
		t.Fatal(err)
	}

	if err := sess.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	call := strings.Join(run.calls[0], " ")
	if !strings.Contains(call, "remove --assumeyes telnet") {
		t.Errorf("commit command = %q", call)
	}
}

func TestGroupMarksUseGroupSubcommand(t *testing.T) {
	run := &fakeRunner{
		results: []Result{{Stdout: "Nothing to do.\n"}},
	}
	sess := newTestSession(engine.Options{}, run)
	if err := sess.GroupInstall("Development tools"); err != nil {
		t.Fatal(err)
	}

	if _, err := sess.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	call := strings.Join(run.calls[0], " ")
	if !strings.Contains(call, "group install --assumeno Development tools") {
		t.Errorf("group command = %q", call)
	}
}

func TestListInstalled(t *testing.T) {
	run := &fakeRunner{
		results: []Result{{Stdout: "zsh\t0\t5.9\t1.el9\tx86_64\t@System\nbash\t0\t5.2.15\t1.el9\tx86_64\t@System\n"}},
	}
	sess := newTestSession(engine.Options{}, run)

	recs, err := sess.ListInstalled(context.Background())
	if err != nil {
		t.Fatalf("ListInstalled: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "bash" {
		t.Errorf("records = %v, want sorted with bash first", recs)
	}
	call := strings.Join(run.calls[0], " ")
	if !strings.Contains(call, "repoquery") || !strings.Contains(call, "--installed") {
		t.Errorf("query command = %q", call)
	}
}

func TestClosedSessionRejectsWork(t *testing.T) {
	sess := newTestSession(engine.Options{}, nil)
	if err := sess.Close(); err != nil {
		t.Fatal(err)
	}
	if err := sess.Close(); err != nil {
		t.Errorf("second Close = %v, want idempotent nil", err)
	}
	if err := sess.Install("httpd"); err == nil {
		t.Error("Install on closed session succeeded")
	}
	if _, err := sess.Resolve(context.Background()); err == nil {
		t.Error("Resolve on closed session succeeded")
	}
}
