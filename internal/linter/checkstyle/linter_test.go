package checkstyle

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DevSymphony/sym-checkstyle/internal/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l := New("", "")
	if l == nil {
		t.Fatal("New() returned nil")
	}

	if l.ToolsDir == "" {
		t.Error("ToolsDir should not be empty")
	}
	if l.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", l.Version, DefaultVersion)
	}
}

func TestName(t *testing.T) {
	l := New("", "")
	if l.Name() != "checkstyle" {
		t.Errorf("Name() = %q, want %q", l.Name(), "checkstyle")
	}
}

func TestJARPath(t *testing.T) {
	l := New("/test/tools", "10.0")
	assert.Equal(t, filepath.Join("/test/tools", "checkstyle-10.0-all.jar"), l.JARPath())

	l.JarPath = "/opt/checkstyle.jar"
	assert.Equal(t, "/opt/checkstyle.jar", l.JARPath())
}

func TestArgs(t *testing.T) {
	l := New("/tools", "10.0")

	args := l.Args(Invocation{
		ConfigLocation: "/work/rules.xml",
		PropertiesFile: "/work/checkstyle-checker.properties",
		OutputFile:     "/work/out.xml",
		Encoding:       "UTF-8",
		Files:          []string{"A.java", "B.java"},
	})

	assert.Equal(t, []string{
		"-Dfile.encoding=UTF-8",
		"-jar", filepath.Join("/tools", "checkstyle-10.0-all.jar"),
		"-c", "/work/rules.xml",
		"-f", "xml",
		"-o", "/work/out.xml",
		"-p", "/work/checkstyle-checker.properties",
		"A.java", "B.java",
	}, args)
}

func TestArgs_Minimal(t *testing.T) {
	l := New("/tools", "10.0")

	args := l.Args(Invocation{ConfigLocation: "/sun_checks.xml", OutputFile: "out.xml"})

	assert.NotContains(t, args, "-p")
	assert.Equal(t, "-jar", args[0])
}

func TestRun_NoFiles(t *testing.T) {
	l := New(t.TempDir(), "")
	l.JavaPath = ""

	out, err := l.Run(context.Background(), Invocation{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
}

func TestCheckAvailability_NoJava(t *testing.T) {
	l := New(t.TempDir(), "")
	l.JavaPath = ""

	err := l.CheckAvailability(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "java not found")
}

func TestInstall(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	toolsDir := t.TempDir()
	l := New(toolsDir, "10.1")
	l.ReleaseURL = srv.URL

	require.NoError(t, l.Install(context.Background(), linter.InstallConfig{}))
	assert.Equal(t, "/checkstyle-10.1/checkstyle-10.1-all.jar", requested)

	data, err := os.ReadFile(l.JARPath())
	require.NoError(t, err)
	assert.Equal(t, "jar-bytes", string(data))

	// Already installed: no second download
	requested = ""
	require.NoError(t, l.Install(context.Background(), linter.InstallConfig{}))
	assert.Empty(t, requested)
}

func TestInstall_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := New(t.TempDir(), "0.0")
	l.ReleaseURL = srv.URL

	err := l.Install(context.Background(), linter.InstallConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	_, statErr := os.Stat(l.JARPath())
	assert.True(t, os.IsNotExist(statErr))
}

func writeJar(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "checkstyle-all.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestBuiltinConfig(t *testing.T) {
	l := New(t.TempDir(), "")
	l.JarPath = writeJar(t, map[string]string{
		"sun_checks.xml": "<module name=\"Checker\"/>",
	})

	data, err := l.BuiltinConfig("/sun_checks.xml")
	require.NoError(t, err)
	assert.Equal(t, "<module name=\"Checker\"/>", string(data))

	_, err = l.BuiltinConfig("google_checks.xml")
	assert.Error(t, err)
}

func TestEngineVersion(t *testing.T) {
	l := New(t.TempDir(), "1.0")
	l.JarPath = writeJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\r\nImplementation-Version: 10.26.1\r\n",
	})
	assert.Equal(t, "10.26.1", l.EngineVersion())

	l.JarPath = filepath.Join(t.TempDir(), "missing.jar")
	assert.Equal(t, "1.0", l.EngineVersion())
}

func TestIsBuiltinConfig(t *testing.T) {
	assert.True(t, IsBuiltinConfig("sun_checks.xml"))
	assert.True(t, IsBuiltinConfig("/google_checks.xml"))
	assert.False(t, IsBuiltinConfig("config/sun_checks.xml"))
	assert.False(t, IsBuiltinConfig(""))
}
