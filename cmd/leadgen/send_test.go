package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/Mirnes420/leadgen/cmd/leadgen"
	"github.com/Mirnes420/leadgen/mock"
)

func testDependencies(stdout, stderr io.Writer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeLeadsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCmdSend(t *testing.T) {
	t.Parallel()

	t.Run("sends to resolved leads and skips the rest", func(t *testing.T) {
		t.Parallel()

		path := writeLeadsFile(t, "name,website,email\n"+
			"Acme Plumbing,https://acme.de,a@acme.de\n"+
			"No Email Shop,https://noemail.de,unresolved\n"+
			"Best Pipes,https://bestpipes.de,b@bestpipes.de\n")

		var sent []string
		stdout := &bytes.Buffer{}
		deps := testDependencies(stdout, &bytes.Buffer{})
		deps.Mailer = &mock.Mailer{
			SendFn: func(_ context.Context, toEmail, businessName, city string) error {
				sent = append(sent, toEmail)
				assert.Equal(t, "Berlin", city)
				return nil
			},
		}

		cmd := &main.SendCmd{File: path, City: "Berlin"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"a@acme.de", "b@bestpipes.de"}, sent)
		assert.Contains(t, stdout.String(), "2 sent, 1 skipped")
	})

	t.Run("fails when the leads file is missing", func(t *testing.T) {
		t.Parallel()

		deps := testDependencies(&bytes.Buffer{}, &bytes.Buffer{})
		cmd := &main.SendCmd{File: filepath.Join(t.TempDir(), "missing.csv"), City: "Berlin"}
		require.Error(t, cmd.Run(deps))
	})

	t.Run("stops on delivery failure", func(t *testing.T) {
		t.Parallel()

		path := writeLeadsFile(t, "name,website,email\n"+
			"Acme Plumbing,https://acme.de,a@acme.de\n")

		deps := testDependencies(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Mailer = &mock.Mailer{
			SendFn: func(context.Context, string, string, string) error {
				return assert.AnError
			},
		}

		cmd := &main.SendCmd{File: path, City: "Berlin"}
		require.Error(t, cmd.Run(deps))
	})
}
