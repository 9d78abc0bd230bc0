package checkstyle

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"strings"
)

// BuiltinConfigs are the configurations bundled inside the Checkstyle JAR.
var BuiltinConfigs = []string{"sun_checks.xml", "google_checks.xml"}

// IsBuiltinConfig reports whether location names a bundled configuration.
func IsBuiltinConfig(location string) bool {
	name := strings.TrimPrefix(location, "/")
	for _, b := range BuiltinConfigs {
		if name == b {
			return true
		}
	}
	return false
}

// BuiltinConfig reads a bundled configuration from the JAR.
func (l *Linter) BuiltinConfig(name string) ([]byte, error) {
	return readJarEntry(l.JARPath(), strings.TrimPrefix(name, "/"))
}

// EngineVersion returns the Implementation-Version from the JAR manifest,
// falling back to the configured version.
func (l *Linter) EngineVersion() string {
	manifest, err := readJarEntry(l.JARPath(), "META-INF/MANIFEST.MF")
	if err != nil {
		return l.Version
	}
	if v := manifestAttribute(string(manifest), "Implementation-Version"); v != "" {
		return v
	}
	return l.Version
}

func readJarEntry(jarPath, name string) ([]byte, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", jarPath, err)
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in %s", name, jarPath)
}

func manifestAttribute(manifest, key string) string {
	scanner := bufio.NewScanner(strings.NewReader(manifest))
	prefix := key + ":"
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}
