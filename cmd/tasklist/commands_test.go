package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/tasklist/internal/api"
	"github.com/jacksmith/tasklist/internal/cli"
	"github.com/jacksmith/tasklist/internal/config"
	"github.com/jacksmith/tasklist/internal/model"
	"github.com/jacksmith/tasklist/internal/store"
	"github.com/jacksmith/tasklist/internal/testutil"
)

// setupTestAPI starts a fake task API and points the global flags at it.
func setupTestAPI(t *testing.T, seed ...model.Task) *testutil.FakeAPI {
	t.Helper()

	fake := testutil.NewFakeAPI(seed...)
	t.Cleanup(fake.Close)

	resetFlags()
	flagBaseURL = fake.URL()
	flagConfig = filepath.Join(t.TempDir(), config.FileName)
	t.Setenv(config.EnvBaseURL, "")
	t.Cleanup(resetFlags)

	return fake
}

func resetFlags() {
	flagBaseURL = ""
	flagConfig = ""
	flagDebug = false
	flagSerializeWrites = false
	flagShowErrors = false
	listJSON = false
	renameInteractive = false
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "3f2a91", Name: "Buy milk"},
		{ID: "3f7c02", Name: "Walk the dog"},
		{ID: "b1e4d8", Name: "Pay rent"},
	}
}

// captureOutput runs fn with os.Stdout redirected and returns what it printed.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

func TestListCommand(t *testing.T) {
	setupTestAPI(t, sampleTasks()...)

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)

	for _, s := range []string{"3f2a91", "Buy milk", "3f7c02", "Walk the dog", "b1e4d8", "Pay rent"} {
		assert.Contains(t, output, s)
	}
	assert.Less(t, strings.Index(output, "Buy milk"), strings.Index(output, "Pay rent"), "server order is kept")
}

func TestListCommandEmpty(t *testing.T) {
	setupTestAPI(t)

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Equal(t, "No tasks.\n", output)
}

func TestListCommandJSON(t *testing.T) {
	setupTestAPI(t, sampleTasks()...)
	listJSON = true

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)

	var got struct {
		Tasks model.Collection `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, model.Collection(sampleTasks()), got.Tasks)
}

func TestListCommandFailure(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)
	fake.Fail(api.OpList, http.StatusInternalServerError)

	_, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrLoadFailed)
	assert.ErrorIs(t, err, api.ErrRequestFailed)
}

func TestAddCommand(t *testing.T) {
	fake := setupTestAPI(t)
	fake.NewID = func() string { return "c0ffee" }

	output, err := captureOutput(t, func() error { return runAdd(nil, []string{"Buy", "oat", "milk"}) })
	require.NoError(t, err)

	assert.Equal(t, "c0ffee Buy oat milk\n", output)
	assert.Equal(t, model.Collection{{ID: "c0ffee", Name: "Buy oat milk"}}, fake.Tasks())
}

func TestAddCommandFailure(t *testing.T) {
	fake := setupTestAPI(t)
	fake.Fail(api.OpCreate, http.StatusBadRequest)

	_, err := captureOutput(t, func() error { return runAdd(nil, []string{"Buy milk"}) })
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAddFailed)
	assert.Equal(t, "error: could not add task: create tasks: unexpected status 400 Bad Request (want 201)", cli.FormatError(err))
	assert.Empty(t, fake.Tasks())
}

func TestRenameCommand(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)

	output, err := captureOutput(t, func() error { return runRename(nil, []string{"b1", "Pay", "the", "rent"}) })
	require.NoError(t, err)

	assert.Equal(t, "b1e4d8 renamed to Pay the rent\n", output)
	got, ok := fake.Tasks().Find("b1e4d8")
	require.True(t, ok)
	assert.Equal(t, "Pay the rent", got.Name)
}

func TestRenameCommandInteractive(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)
	renameInteractive = true

	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'Buy oat milk\\n' > \"$1\"\n"), 0755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	_, err := captureOutput(t, func() error { return runRename(nil, []string{"3f2a"}) })
	require.NoError(t, err)

	got, _ := fake.Tasks().Find("3f2a91")
	assert.Equal(t, "Buy oat milk", got.Name)
}

func TestRenameCommandInteractiveUnchanged(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)
	renameInteractive = true
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	output, err := captureOutput(t, func() error { return runRename(nil, []string{"3f2a"}) })
	require.NoError(t, err)

	assert.Equal(t, "No changes made.\n", output)
	for _, r := range fake.Requests() {
		assert.NotEqual(t, http.MethodPut, r.Method)
	}
}

func TestRenameCommandArguments(t *testing.T) {
	setupTestAPI(t, sampleTasks()...)

	err := runRename(nil, []string{"3f2a"})
	var verr *cli.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	renameInteractive = true
	err = runRename(nil, []string{"3f2a", "Buy milk"})
	require.ErrorAs(t, err, &verr)
}

func TestRmCommand(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)

	output, err := captureOutput(t, func() error { return runRm(nil, []string{"3F7"}) })
	require.NoError(t, err)

	assert.Equal(t, "3f7c02 deleted.\n", output)
	assert.Equal(t, model.Collection{{ID: "3f2a91", Name: "Buy milk"}, {ID: "b1e4d8", Name: "Pay rent"}}, fake.Tasks())
}

func TestIDPrefixErrors(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "ambiguous",
			prefix: "3f",
			check: func(t *testing.T, err error) {
				var aerr *cli.AmbiguousError
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, []string{"3f2a91", "3f7c02"}, aerr.Matches)
			},
		},
		{
			name:   "not found",
			prefix: "zz",
			check: func(t *testing.T, err error) {
				var nerr *cli.NotFoundError
				require.ErrorAs(t, err, &nerr)
				assert.Contains(t, err.Error(), "not found")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := setupTestAPI(t, sampleTasks()...)

			tt.check(t, runRm(nil, []string{tt.prefix}))
			assert.Len(t, fake.Tasks(), 3, "nothing is deleted")
		})
	}
}

func TestRmCommandFailure(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)
	fake.Fail(api.OpDelete, http.StatusInternalServerError)

	err := runRm(nil, []string{"b1e4d8"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDeleteFailed)
	assert.Len(t, fake.Tasks(), 3)
}

func TestLoadConfigPrecedence(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://file.example\ntimeout: 5s\n"), 0644))
	flagConfig = path

	t.Setenv(config.EnvBaseURL, "")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://file.example", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Setenv(config.EnvBaseURL, "http://env.example/")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.BaseURL)

	flagBaseURL = "https://flag.example"
	flagDebug = true
	flagSerializeWrites = true
	flagShowErrors = true
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SerializeWrites)
	assert.True(t, cfg.ShowErrors)
}

func TestLoadConfigRejectsBadBaseURL(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	flagConfig = filepath.Join(t.TempDir(), config.FileName)
	flagBaseURL = "localhost:3333"

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base_url")
}

func TestCompleteTaskIDs(t *testing.T) {
	setupTestAPI(t, sampleTasks()...)

	got, directive := completeTaskIDs(&cobra.Command{}, nil, "3F")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []string{"3f2a91\tBuy milk", "3f7c02\tWalk the dog"}, got)

	got, _ = completeTaskIDs(&cobra.Command{}, []string{"3f2a91"}, "")
	assert.Empty(t, got, "only the id argument is completed")
}

func TestCompleteTaskIDsUnreachable(t *testing.T) {
	fake := setupTestAPI(t, sampleTasks()...)
	fake.Fail(api.OpList, http.StatusServiceUnavailable)

	got, directive := completeTaskIDs(&cobra.Command{}, nil, "")
	assert.Empty(t, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"list", "add", "rename", "rm", "completion"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"base-url", "config", "debug", "serialize-writes", "show-errors"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestOpenLogFile(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	flagConfig = filepath.Join(dir, "nested", config.FileName)

	w, closeLog := openLogFile()
	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, "nested", config.LogFileName))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
