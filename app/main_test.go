package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Generate(t *testing.T) {
	out := captureStdout(t)

	require.NoError(t, run([]string{"generate", "--seed", "123456890"}))
	assert.Equal(t, "QLMM-J46Q-46RT\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"--parts=2", "--part-length=5", "generate", "-n", "3"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Regexp(t, `^[0-9A-Z]{5}-[0-9A-Z]{5}$`, l)
	}
}

func TestRun_GenerateErrors(t *testing.T) {
	captureStdout(t)

	err := run([]string{"--parts=7", "generate", "--seed", "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")

	err = run([]string{"--part-length=-1", "generate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad params")

	err = run([]string{"generate", "-n", "0"})
	require.Error(t, err)
}

func TestRun_Validate(t *testing.T) {
	out := captureStdout(t)

	require.NoError(t, run([]string{"validate", "qlmm-j46q-46rt", "I9oD V467 8D52"}))
	assert.Equal(t, "QLMM-J46Q-46RT\tvalid\n190D-V467-8D52\tvalid\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"--parts=2", "validate", "1K7Q-CTFM"}))
	assert.Equal(t, "1K7Q-CTFM\tvalid\n", out.String())

	out.Reset()
	err := run([]string{"validate", "QLMM-J46Q-46RT", "1K7Q-CTFM"})
	require.ErrorIs(t, err, errInvalidCodes)
	assert.EqualError(t, err, "invalid codes: 1 of 2")
	assert.Contains(t, out.String(), "1K7Q-CTFM\tinvalid, bad code length: 8 symbols, expected 12\n")

	err = run([]string{"validate"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalidCodes)
}

func TestRun_Normalize(t *testing.T) {
	out := captureStdout(t)

	require.NoError(t, run([]string{"normalize", "I9oD-V467-8D52", "abcde"}))
	assert.Equal(t, "190D-V467-8D52\nABCD-E\n", out.String())
}

func TestRun_Server(t *testing.T) {
	captureStdout(t)
	port := 40000 + rand.IntN(10000)

	done := make(chan error, 1)
	go func() {
		done <- run([]string{"server", fmt.Sprintf("--listen=127.0.0.1:%d", port), "--limit=100"})
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/generate?seed=123456890", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && strings.Contains(string(body), "QLMM-J46Q-46RT")
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	orig := stdout
	stdout = buf
	t.Cleanup(func() { stdout = orig })
	return buf
}
