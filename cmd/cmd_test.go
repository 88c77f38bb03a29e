package cmd

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"testing"

	"chartserve/core/server"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct{ port int }

func (f fakeServer) URL(path string) string {
	return "http://localhost:" + strconv.Itoa(f.port) + path
}

func (f fakeServer) Root() string { return "/srv/charts" }

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	cfg := server.Config{Pages: []string{
		"index.html=Temperature Charts",
		"rainfall_charts.html=Rainfall Charts",
	}}

	printBanner(&buf, fakeServer{port: 8003}, cfg)
	out := buf.String()

	assert.Contains(t, out, "Server running at: http://localhost:8003/")
	assert.Contains(t, out, "Serving directory: /srv/charts")
	assert.Contains(t, out, "http://localhost:8003/index.html")
	assert.Contains(t, out, "http://localhost:8003/rainfall_charts.html")
	assert.Contains(t, out, "Temperature Charts:")
	assert.Contains(t, out, "Press Ctrl+C")
}

func TestPrintBanner_NoPages(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, fakeServer{port: 8000}, server.Config{})
	assert.NotContains(t, buf.String(), "Available pages")
}

func TestServeOptions_Apply(t *testing.T) {
	var o serveOptions
	c := &cobra.Command{Use: "test"}
	addServeFlags(c, &o)
	require.NoError(t, c.Flags().Parse([]string{"--port", "9000", "--scan=false", "-d", "/tmp/charts"}))

	cfg := server.Config{
		Host:        "localhost",
		Port:        8000,
		Scan:        true,
		MaxAttempts: 10,
		RootMode:    server.RootModeCwd,
		Open:        true,
		Landing:     "/from-env.html",
	}
	o.apply(c.Flags(), &cfg)

	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.Scan)
	assert.Equal(t, "/tmp/charts", cfg.Root)
	// Untouched flags keep the loaded values.
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 10, cfg.MaxAttempts)
	assert.True(t, cfg.Open)
	assert.Equal(t, "/from-env.html", cfg.Landing)
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return buf.String(), err
}

func TestPortCmd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	start := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	out, err := runRoot(t, "port", "--start", strconv.Itoa(start), "--attempts", "1")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(start), strings.TrimSpace(out))
}

func TestPortCmd_Exhausted(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	_, err = runRoot(t, "port", "--start", strconv.Itoa(busy), "--attempts", "1")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(out))
}

func TestServeCmd_InvalidRoot(t *testing.T) {
	_, err := runRoot(t, "serve", "--root", "/definitely/not/here", "--open=false")
	assert.ErrorIs(t, err, server.ErrInvalidRoot)
}
