package source

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range []string{
		"/p/src/main/java/org/A.java",
		"/p/src/main/java/org/B.java",
		"/p/src/main/java/org/gen/Gen.java",
		"/p/src/main/java/org/notes.txt",
		"/p/src/main/java/.git/objects/X.java",
		"/p/src/test/java/org/ATest.java",
		"/p/src/main/resources/app.properties",
		"/p/src/main/resources/app.xml",
		"/p/src/test/resources/test.properties",
		"/p/target/generated-sources/annotations/G.java",
	} {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0644))
	}
	return fs
}

func TestSplitPatterns(t *testing.T) {
	assert.Equal(t, []string{"**/*.java", "org/gen/**"}, SplitPatterns(" **/*.java , org/gen/ ,"))
	assert.Empty(t, SplitPatterns(""))
}

func TestCollect_Sources(t *testing.T) {
	fs := projectFs(t)

	files, err := Collect(context.Background(), fs, Options{
		SourceDirs:     []string{"/p/src/main/java", "/p/src/missing"},
		TestSourceDirs: []string{"/p/src/test/java"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/p/src/main/java/org/A.java",
		"/p/src/main/java/org/B.java",
		"/p/src/main/java/org/gen/Gen.java",
	}, files)
}

func TestCollect_Excludes(t *testing.T) {
	fs := projectFs(t)

	files, err := Collect(context.Background(), fs, Options{
		SourceDirs: []string{"/p/src/main/java"},
		Includes:   "**/*.java",
		Excludes:   "org/gen/,**/B.java",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/p/src/main/java/org/A.java"}, files)
}

func TestCollect_TestsAndResources(t *testing.T) {
	fs := projectFs(t)

	files, err := Collect(context.Background(), fs, Options{
		SourceDirs:           []string{"/p/src/main/java"},
		TestSourceDirs:       []string{"/p/src/test/java"},
		IncludeTestSources:   true,
		Excludes:             "org/gen/**",
		ResourceDirs:         []string{"/p/src/main/resources"},
		TestResourceDirs:     []string{"/p/src/test/resources"},
		IncludeResources:     true,
		IncludeTestResources: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/p/src/main/java/org/A.java",
		"/p/src/main/java/org/B.java",
		"/p/src/main/resources/app.properties",
		"/p/src/test/java/org/ATest.java",
		"/p/src/test/resources/test.properties",
	}, files)
}

func TestCollect_ExcludeGeneratedSources(t *testing.T) {
	fs := projectFs(t)
	opts := Options{
		SourceDirs: []string{"/p/src/main/java", "/p/target/generated-sources/annotations"},
		Excludes:   "org/**",
		BuildDir:   "/p/target",
	}

	files, err := Collect(context.Background(), fs, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/target/generated-sources/annotations/G.java"}, files)

	opts.ExcludeGeneratedSources = true
	files, err = Collect(context.Background(), fs, opts)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollect_Canceled(t *testing.T) {
	fs := projectFs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, fs, Options{SourceDirs: []string{"/p/src/main/java"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsUnder(t *testing.T) {
	assert.True(t, IsUnder("/p/target/gen", "/p/target"))
	assert.True(t, IsUnder("/p/target", "/p/target"))
	assert.False(t, IsUnder("/p/targets", "/p/target"))
	assert.False(t, IsUnder("/p/src", "/p/target"))
	assert.False(t, IsUnder("/p/src", ""))
}
