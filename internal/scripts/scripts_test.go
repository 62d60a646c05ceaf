package scripts

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/runner"
)

type fakeRunner struct {
	result runner.Result
	calls  []runner.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.calls = append(f.calls, cmd)
	return f.result, nil
}

func TestScripts_Commands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(s *Scripts) error
		want runner.Command
	}{
		{
			name: "create image",
			call: func(s *Scripts) error {
				return s.CreateImage(ctx, "/Applications/Install macOS Sierra.app", "/opt/macbox/dmg/macos1012.dmg")
			},
			want: runner.Command{
				Name:      "/opt/macbox/bin/create_autoinstall_image.sh",
				Args:      []string{"/Applications/Install macOS Sierra.app", "/opt/macbox/dmg/macos1012.dmg"},
				Privilege: runner.Elevated,
				Stream:    true,
			},
		},
		{
			name: "create base box",
			call: func(s *Scripts) error {
				return s.CreateBaseBox(ctx, "/opt/macbox/dmg/macos1012.dmg", "/opt/macbox/box/macos1012.box", "macos1012")
			},
			want: runner.Command{
				Name:      "/opt/macbox/bin/create_base_box.sh",
				Args:      []string{"/opt/macbox/dmg/macos1012.dmg", "/opt/macbox/box/macos1012.box", "macos1012"},
				Privilege: runner.Unprivileged,
				Stream:    true,
			},
		},
		{
			name: "create flavor box",
			call: func(s *Scripts) error {
				return s.CreateFlavorBox(ctx, "macos1012", "/opt/macbox/flavor/server", "/opt/macbox/box/macos1012-server.box", "macos1012-server")
			},
			want: runner.Command{
				Name:      "/opt/macbox/bin/create_flavor_box.sh",
				Args:      []string{"macos1012", "/opt/macbox/flavor/server", "/opt/macbox/box/macos1012-server.box", "macos1012-server"},
				Privilege: runner.Unprivileged,
				Stream:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{}
			if err := tt.call(New(fr, config.NewLayout("/opt/macbox"))); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(fr.calls) != 1 || !reflect.DeepEqual(fr.calls[0], tt.want) {
				t.Errorf("calls = %+v, want [%+v]", fr.calls, tt.want)
			}
		})
	}
}

func TestScripts_InstallerVersion(t *testing.T) {
	fr := &fakeRunner{result: runner.Result{Stdout: "1012\n"}}
	s := New(fr, config.NewLayout("/opt/macbox"))

	got, err := s.InstallerVersion(context.Background(), "/Applications/Install macOS Sierra.app")
	if err != nil {
		t.Fatalf("InstallerVersion() error = %v", err)
	}
	if got != "1012" {
		t.Errorf("InstallerVersion() = %q, want %q", got, "1012")
	}
	if fr.calls[0].Privilege != runner.Elevated {
		t.Errorf("version detection should run elevated")
	}
	if fr.calls[0].Name != "/opt/macbox/bin/get_installer_version.sh" {
		t.Errorf("Name = %q", fr.calls[0].Name)
	}
	if fr.calls[0].Stream {
		t.Errorf("version detection must capture its output")
	}
}

func TestScripts_BuildOutputReachesUser(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	layout := config.NewLayout(t.TempDir())
	if err := os.MkdirAll(layout.BinDir, 0o755); err != nil {
		t.Fatalf("failed to create bin dir: %v", err)
	}
	script := "#!/bin/sh\necho 'packer: building box step 1/9'\n"
	if err := os.WriteFile(layout.ScriptPath(CreateBaseBox), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	var stdout, stderr bytes.Buffer
	r := runner.NewExecRunner(runner.Privileges{}, runner.Streams{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}, nil)

	if err := New(r, layout).CreateBaseBox(context.Background(), "a.dmg", "a.box", "a"); err != nil {
		t.Fatalf("CreateBaseBox() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "packer: building box step 1/9") {
		t.Errorf("user output = %q, want the script's progress", stdout.String())
	}
}

func TestScripts_NonZeroExit(t *testing.T) {
	fr := &fakeRunner{result: runner.Result{ExitCode: 1}}
	s := New(fr, config.NewLayout("/opt/macbox"))

	if err := s.CreateBaseBox(context.Background(), "a.dmg", "a.box", "a"); !errors.Is(err, runner.ErrCommandFailed) {
		t.Errorf("CreateBaseBox() error = %v, want ErrCommandFailed", err)
	}
	if _, err := s.InstallerVersion(context.Background(), "x.app"); !errors.Is(err, runner.ErrCommandFailed) {
		t.Errorf("InstallerVersion() error = %v, want ErrCommandFailed", err)
	}
}
